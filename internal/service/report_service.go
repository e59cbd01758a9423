package service

import (
	"context"
	"time"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/repository"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

// ReportService serves dashboard aggregations. Everything is derived at
// query time from committed state; nothing is precomputed or cached.
type ReportService struct {
	reports repository.ReportRepository
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// RouteActivity counts trips and distinct passengers per route over a date
// window. Defaults to the trailing 30 days when the window is unset.
func (s *ReportService) RouteActivity(ctx context.Context, caller domain.Caller, from, to time.Time) ([]repository.RouteActivityRow, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return nil, apperrors.NewValidationError("from must precede to", nil)
	}
	return s.reports.RouteActivity(ctx, caller.OperatorID, from, to)
}

// RecentTrips lists the operator's latest sessions with driver and route
// names resolved.
func (s *ReportService) RecentTrips(ctx context.Context, caller domain.Caller, limit int) ([]repository.RecentTripRow, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}
	return s.reports.RecentTrips(ctx, caller.OperatorID, limit)
}

// PassengerScanCounts reports each passenger's lifetime check-in count.
func (s *ReportService) PassengerScanCounts(ctx context.Context, caller domain.Caller) ([]repository.PassengerScanCountRow, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}
	return s.reports.PassengerScanCounts(ctx, caller.OperatorID)
}
