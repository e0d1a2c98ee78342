package postgres

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/dfrgroup/hrms/internal/core/port"
)

// BlocklistRepository implements port.BlocklistRepository using PostgreSQL.
// Ranges are stored as inet columns; comparisons are inclusive on both ends.
type BlocklistRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewBlocklistRepository wires a PostgreSQL-backed blocklist repository.
func NewBlocklistRepository(exec pgExecutor) *BlocklistRepository {
	return &BlocklistRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// IsDomainBlocked matches the lower-cased domain exactly against the deny list.
func (r *BlocklistRepository) IsDomainBlocked(ctx context.Context, domain string) (bool, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false, nil
	}

	stmt := `SELECT EXISTS (SELECT 1 FROM hr.blocked_domains WHERE domain_name = $1)`

	var blocked bool
	if err := r.exec.QueryRow(ctx, stmt, domain).Scan(&blocked); err != nil {
		return false, fmt.Errorf("query blocked domain: %w", err)
	}

	return blocked, nil
}

// IsIPBlocked reports whether ip falls within any blocked range. A NULL range
// end is open-ended and matches every address at or above the start.
func (r *BlocklistRepository) IsIPBlocked(ctx context.Context, ip string) (bool, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		// An unparsable address cannot match a stored range.
		return false, nil
	}

	stmt := `
		SELECT EXISTS (
			SELECT 1
			  FROM hr.blocked_ips
			 WHERE $1::inet >= ip_start
			   AND ($1::inet <= ip_end OR ip_end IS NULL)
		)
	`

	var blocked bool
	if err := r.exec.QueryRow(ctx, stmt, addr.String()).Scan(&blocked); err != nil {
		return false, fmt.Errorf("query blocked ip: %w", err)
	}

	return blocked, nil
}

// IsRegionBlocked reports whether the country code matches a blocked region or
// ip falls within a blocked region's range. Either condition alone blocks.
func (r *BlocklistRepository) IsRegionBlocked(ctx context.Context, ip, countryCode string) (bool, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))

	addr, parseErr := netip.ParseAddr(ip)
	if parseErr != nil && countryCode == "" {
		return false, nil
	}

	if parseErr != nil {
		stmt := `SELECT EXISTS (SELECT 1 FROM hr.blocked_regions WHERE country_code = $1)`
		var blocked bool
		if err := r.exec.QueryRow(ctx, stmt, countryCode).Scan(&blocked); err != nil {
			return false, fmt.Errorf("query blocked region: %w", err)
		}
		return blocked, nil
	}

	stmt := `
		SELECT EXISTS (
			SELECT 1
			  FROM hr.blocked_regions
			 WHERE country_code = $1
			    OR ($2::inet >= ip_range_start AND $2::inet <= ip_range_end)
		)
	`

	var blocked bool
	if err := r.exec.QueryRow(ctx, stmt, countryCode, addr.String()).Scan(&blocked); err != nil {
		return false, fmt.Errorf("query blocked region: %w", err)
	}

	return blocked, nil
}

var _ port.BlocklistRepository = (*BlocklistRepository)(nil)
