package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/model"
	"driver-roster/backend/internal/repository"
)

// OvertimeService 加班台账查询接口
//
// 台账的写入全部由替班流程驱动（见 ReplacementService），
// 本服务只做只读查询与月度汇总。
type OvertimeService interface {
	// List 按月（可选按司机）列出加班记录
	List(ctx context.Context, req *dto.OvertimeListRequest) ([]dto.OvertimeResponse, error)
	// MonthlySummary 月度汇总：每司机总时数与加权时数
	MonthlySummary(ctx context.Context, month, year int) (*dto.OvertimeSummaryResponse, error)
}

type overtimeService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewOvertimeService 创建 OvertimeService 实例
func NewOvertimeService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) OvertimeService {
	return &overtimeService{repo: repo, loc: loc, logger: logger}
}

func (s *overtimeService) List(ctx context.Context, req *dto.OvertimeListRequest) ([]dto.OvertimeResponse, error) {
	first, last := monthRange(req.Year, req.Month, s.loc)

	var (
		records []model.OvertimeRecord
		err     error
	)
	if req.DriverID != "" {
		records, err = s.repo.Overtime.ListByDriverAndRange(ctx, req.DriverID, first, last)
	} else {
		records, err = s.repo.Overtime.ListByRange(ctx, first, last)
	}
	if err != nil {
		s.logger.Error("查询加班记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.OvertimeResponse, 0, len(records))
	for i := range records {
		result = append(result, *toOvertimeResponse(&records[i]))
	}
	return result, nil
}

// MonthlySummary 按司机聚合：总时数为 Σ hours，加权时数为 Σ hours×rate。
// decimal 精确累加，顺序按司机工号稳定输出。
func (s *overtimeService) MonthlySummary(ctx context.Context, month, year int) (*dto.OvertimeSummaryResponse, error) {
	first, last := monthRange(year, month, s.loc)

	records, err := s.repo.Overtime.ListByRange(ctx, first, last)
	if err != nil {
		s.logger.Error("查询加班记录失败", zap.Error(err))
		return nil, err
	}

	type acc struct {
		driver   dto.DriverBrief
		total    decimal.Decimal
		weighted decimal.Decimal
	}
	byDriver := make(map[string]*acc)
	for i := range records {
		rec := &records[i]
		a, ok := byDriver[rec.DriverID]
		if !ok {
			a = &acc{}
			if rec.Driver != nil {
				a.driver = dto.DriverBrief{ID: rec.Driver.DriverID, Name: rec.Driver.Name, StaffID: rec.Driver.StaffID}
			} else {
				a.driver = dto.DriverBrief{ID: rec.DriverID}
			}
			byDriver[rec.DriverID] = a
		}
		a.total = a.total.Add(rec.Hours)
		a.weighted = a.weighted.Add(rec.Hours.Mul(rec.OTRate))
	}

	drivers := make([]dto.OvertimeDriverSummary, 0, len(byDriver))
	for _, a := range byDriver {
		drivers = append(drivers, dto.OvertimeDriverSummary{
			Driver:        a.driver,
			TotalHours:    a.total.String(),
			WeightedHours: a.weighted.String(),
		})
	}
	sort.Slice(drivers, func(i, j int) bool {
		return drivers[i].Driver.StaffID < drivers[j].Driver.StaffID
	})

	return &dto.OvertimeSummaryResponse{
		Month:   month,
		Year:    year,
		Drivers: drivers,
	}, nil
}

func toOvertimeResponse(rec *model.OvertimeRecord) *dto.OvertimeResponse {
	resp := &dto.OvertimeResponse{
		ID:       rec.OvertimeID,
		DriverID: rec.DriverID,
		Date:     rec.Date.Format("2006-01-02"),
		Hours:    rec.Hours.String(),
		OTType:   rec.OTType,
		OTRate:   rec.OTRate.String(),
	}
	if rec.Driver != nil {
		resp.Driver = &dto.DriverBrief{
			ID:      rec.Driver.DriverID,
			Name:    rec.Driver.Name,
			StaffID: rec.Driver.StaffID,
		}
	}
	return resp
}
