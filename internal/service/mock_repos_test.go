package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
	"driver-roster/backend/internal/repository"
)

// 内存 Mock 仓储：按接口逐个实现，关联查询由各 mock 间互相引用拼装。

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func inRange(d, from, to time.Time) bool {
	ds := d.Format("2006-01-02")
	return ds >= from.Format("2006-01-02") && ds <= to.Format("2006-01-02")
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock DriverRepository ──

type mockDriverRepo struct {
	drivers map[string]*model.Driver
	shifts  *mockDriverShiftRepo
	seq     int
}

func newMockDriverRepo(shifts *mockDriverShiftRepo) *mockDriverRepo {
	return &mockDriverRepo{drivers: make(map[string]*model.Driver), shifts: shifts}
}

func (m *mockDriverRepo) Create(_ context.Context, driver *model.Driver) error {
	if driver.DriverID == "" {
		m.seq++
		driver.DriverID = fmt.Sprintf("driver-%03d", m.seq)
	}
	m.drivers[driver.DriverID] = driver
	return nil
}

func (m *mockDriverRepo) withAssignments(d *model.Driver) *model.Driver {
	copied := *d
	copied.Shifts = nil
	if m.shifts != nil {
		for _, as := range m.shifts.assignments {
			if as.DriverID == d.DriverID {
				copied.Shifts = append(copied.Shifts, *as)
			}
		}
	}
	return &copied
}

func (m *mockDriverRepo) GetByID(_ context.Context, id string) (*model.Driver, error) {
	if d, ok := m.drivers[id]; ok {
		return m.withAssignments(d), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) GetByStaffID(_ context.Context, staffID string) (*model.Driver, error) {
	for _, d := range m.drivers {
		if d.StaffID == staffID {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) List(_ context.Context, keyword string, offset, limit int) ([]model.Driver, int64, error) {
	var all []model.Driver
	for _, d := range m.drivers {
		if keyword != "" && !strings.Contains(d.Name, keyword) && !strings.Contains(d.StaffID, keyword) {
			continue
		}
		all = append(all, *m.withAssignments(d))
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockDriverRepo) ListAll(_ context.Context) ([]model.Driver, error) {
	var all []model.Driver
	for _, d := range m.drivers {
		all = append(all, *m.withAssignments(d))
	}
	return all, nil
}

func (m *mockDriverRepo) Update(_ context.Context, driver *model.Driver) error {
	m.drivers[driver.DriverID] = driver
	return nil
}

func (m *mockDriverRepo) Delete(_ context.Context, id string) error {
	delete(m.drivers, id)
	return nil
}

// ── Mock DriverShiftRepository ──

type mockDriverShiftRepo struct {
	assignments []*model.DriverShift
	shiftRepo   *mockShiftRepo
	seq         int
}

func newMockDriverShiftRepo(shiftRepo *mockShiftRepo) *mockDriverShiftRepo {
	return &mockDriverShiftRepo{shiftRepo: shiftRepo}
}

func (m *mockDriverShiftRepo) ListByDriver(_ context.Context, driverID string) ([]model.DriverShift, error) {
	var result []model.DriverShift
	for _, as := range m.assignments {
		if as.DriverID == driverID {
			result = append(result, *as)
		}
	}
	return result, nil
}

func (m *mockDriverShiftRepo) ReplaceForDriver(_ context.Context, driverID string, assignments []model.DriverShift) error {
	var kept []*model.DriverShift
	for _, as := range m.assignments {
		if as.DriverID != driverID {
			kept = append(kept, as)
		}
	}
	m.assignments = kept
	for i := range assignments {
		as := assignments[i]
		m.seq++
		as.DriverShiftID = fmt.Sprintf("ds-%03d", m.seq)
		if m.shiftRepo != nil {
			as.Shift = m.shiftRepo.shifts[as.ShiftID]
		}
		m.assignments = append(m.assignments, &as)
	}
	return nil
}

// assign 测试辅助：直接挂一条班次分配
func (m *mockDriverShiftRepo) assign(driverID, shiftID string, primary bool) {
	m.seq++
	as := &model.DriverShift{
		DriverShiftID: fmt.Sprintf("ds-%03d", m.seq),
		DriverID:      driverID,
		ShiftID:       shiftID,
		IsPrimary:     primary,
	}
	if m.shiftRepo != nil {
		as.Shift = m.shiftRepo.shifts[shiftID]
	}
	m.assignments = append(m.assignments, as)
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	seq    int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.seq++
		shift.ShiftID = fmt.Sprintf("shift-%03d", m.seq)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules    map[string]*model.Schedule
	replacements *mockReplacementRepo
	drivers      *mockDriverRepo
	seq          int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sched-%03d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) hydrate(s *model.Schedule) *model.Schedule {
	copied := *s
	copied.Replacements = nil
	if m.replacements != nil {
		for _, r := range m.replacements.replacements {
			if r.ScheduleID == s.ScheduleID {
				copied.Replacements = append(copied.Replacements, *m.replacements.hydrate(r))
			}
		}
	}
	if m.drivers != nil {
		copied.Driver = m.drivers.drivers[s.DriverID]
	}
	return &copied
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return m.hydrate(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetByDriverAndDate(_ context.Context, driverID string, date time.Time) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if s.DriverID == driverID && sameDay(s.Date, date) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByDate(_ context.Context, date time.Time) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if sameDay(s.Date, date) {
			result = append(result, *m.hydrate(s))
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListByDriverAndRange(_ context.Context, driverID string, from, to time.Time) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.DriverID == driverID && inRange(s.Date, from, to) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if inRange(s.Date, from, to) {
			result = append(result, *m.hydrate(s))
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepo) DeleteDayOffInRange(_ context.Context, driverID string, from, to time.Time) (int64, error) {
	var removed int64
	for id, s := range m.schedules {
		if s.DriverID == driverID && s.IsDayOff && inRange(s.Date, from, to) {
			delete(m.schedules, id)
			removed++
		}
	}
	return removed, nil
}

// countByDriver 测试辅助：统计某司机的日程行数
func (m *mockScheduleRepo) countByDriver(driverID string) int {
	n := 0
	for _, s := range m.schedules {
		if s.DriverID == driverID {
			n++
		}
	}
	return n
}

// ── Mock ReplacementRepository ──

type mockReplacementRepo struct {
	replacements map[string]*model.Replacement
	schedules    *mockScheduleRepo
	drivers      *mockDriverRepo
	shifts       *mockShiftRepo
	seq          int
}

func newMockReplacementRepo() *mockReplacementRepo {
	return &mockReplacementRepo{replacements: make(map[string]*model.Replacement)}
}

func (m *mockReplacementRepo) hydrate(r *model.Replacement) *model.Replacement {
	copied := *r
	if m.schedules != nil {
		if s, ok := m.schedules.schedules[r.ScheduleID]; ok {
			sc := *s
			if m.drivers != nil {
				sc.Driver = m.drivers.drivers[s.DriverID]
			}
			copied.Schedule = &sc
		}
	}
	if m.drivers != nil {
		copied.ReplacementDriver = m.drivers.drivers[r.ReplacementDriverID]
	}
	if m.shifts != nil {
		copied.Shift = m.shifts.shifts[r.ShiftID]
	}
	return &copied
}

func (m *mockReplacementRepo) Create(_ context.Context, replacement *model.Replacement) error {
	if replacement.ReplacementID == "" {
		m.seq++
		replacement.ReplacementID = fmt.Sprintf("rep-%03d", m.seq)
	}
	m.replacements[replacement.ReplacementID] = replacement
	return nil
}

func (m *mockReplacementRepo) GetByID(_ context.Context, id string) (*model.Replacement, error) {
	if r, ok := m.replacements[id]; ok {
		return m.hydrate(r), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReplacementRepo) GetByScheduleAndShift(_ context.Context, scheduleID, shiftID string) (*model.Replacement, error) {
	for _, r := range m.replacements {
		if r.ScheduleID == scheduleID && r.ShiftID == shiftID {
			return m.hydrate(r), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReplacementRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.Replacement, error) {
	var result []model.Replacement
	for _, r := range m.replacements {
		if r.ScheduleID == scheduleID {
			result = append(result, *m.hydrate(r))
		}
	}
	return result, nil
}

func (m *mockReplacementRepo) ListByDriverAndRange(_ context.Context, driverID string, from, to time.Time) ([]model.Replacement, error) {
	var result []model.Replacement
	for _, r := range m.replacements {
		if r.ReplacementDriverID != driverID || m.schedules == nil {
			continue
		}
		if s, ok := m.schedules.schedules[r.ScheduleID]; ok && inRange(s.Date, from, to) {
			result = append(result, *m.hydrate(r))
		}
	}
	return result, nil
}

func (m *mockReplacementRepo) Update(_ context.Context, replacement *model.Replacement) error {
	m.replacements[replacement.ReplacementID] = replacement
	return nil
}

func (m *mockReplacementRepo) Delete(_ context.Context, id string) error {
	delete(m.replacements, id)
	return nil
}

func (m *mockReplacementRepo) CountBySchedule(_ context.Context, scheduleID string) (int64, error) {
	var count int64
	for _, r := range m.replacements {
		if r.ScheduleID == scheduleID {
			count++
		}
	}
	return count, nil
}

// ── Mock OvertimeRepository ──

type mockOvertimeRepo struct {
	records map[string]*model.OvertimeRecord
	drivers *mockDriverRepo
	seq     int
}

func newMockOvertimeRepo() *mockOvertimeRepo {
	return &mockOvertimeRepo{records: make(map[string]*model.OvertimeRecord)}
}

func (m *mockOvertimeRepo) Create(_ context.Context, record *model.OvertimeRecord) error {
	if record.OvertimeID == "" {
		m.seq++
		record.OvertimeID = fmt.Sprintf("ot-%03d", m.seq)
	}
	m.records[record.OvertimeID] = record
	return nil
}

func (m *mockOvertimeRepo) GetByDriverDateType(_ context.Context, driverID string, date time.Time, otType string) (*model.OvertimeRecord, error) {
	for _, r := range m.records {
		if r.DriverID == driverID && sameDay(r.Date, date) && r.OTType == otType {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOvertimeRepo) hydrate(r *model.OvertimeRecord) *model.OvertimeRecord {
	copied := *r
	if m.drivers != nil {
		copied.Driver = m.drivers.drivers[r.DriverID]
	}
	return &copied
}

func (m *mockOvertimeRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.OvertimeRecord, error) {
	var result []model.OvertimeRecord
	for _, r := range m.records {
		if inRange(r.Date, from, to) {
			result = append(result, *m.hydrate(r))
		}
	}
	return result, nil
}

func (m *mockOvertimeRepo) ListByDriverAndRange(_ context.Context, driverID string, from, to time.Time) ([]model.OvertimeRecord, error) {
	var result []model.OvertimeRecord
	for _, r := range m.records {
		if r.DriverID == driverID && inRange(r.Date, from, to) {
			result = append(result, *m.hydrate(r))
		}
	}
	return result, nil
}

func (m *mockOvertimeRepo) Update(_ context.Context, record *model.OvertimeRecord) error {
	m.records[record.OvertimeID] = record
	return nil
}

func (m *mockOvertimeRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// ── Mock DayoffPatternRepository ──

type mockDayoffPatternRepo struct {
	patterns map[string]*model.MonthlyDayoffPattern
	seq      int
}

func newMockDayoffPatternRepo() *mockDayoffPatternRepo {
	return &mockDayoffPatternRepo{patterns: make(map[string]*model.MonthlyDayoffPattern)}
}

func (m *mockDayoffPatternRepo) Create(_ context.Context, pattern *model.MonthlyDayoffPattern) error {
	if pattern.PatternID == "" {
		m.seq++
		pattern.PatternID = fmt.Sprintf("pat-%03d", m.seq)
	}
	m.patterns[pattern.PatternID] = pattern
	return nil
}

func (m *mockDayoffPatternRepo) GetByID(_ context.Context, id string) (*model.MonthlyDayoffPattern, error) {
	if p, ok := m.patterns[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDayoffPatternRepo) GetByDriverMonthYear(_ context.Context, driverID string, month, year int) (*model.MonthlyDayoffPattern, error) {
	for _, p := range m.patterns {
		if p.DriverID == driverID && p.Month == month && p.Year == year {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDayoffPatternRepo) ListByMonthYear(_ context.Context, month, year int) ([]model.MonthlyDayoffPattern, error) {
	var result []model.MonthlyDayoffPattern
	for _, p := range m.patterns {
		if p.Month == month && p.Year == year {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockDayoffPatternRepo) Update(_ context.Context, pattern *model.MonthlyDayoffPattern) error {
	m.patterns[pattern.PatternID] = pattern
	return nil
}

func (m *mockDayoffPatternRepo) Delete(_ context.Context, id string) error {
	delete(m.patterns, id)
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
	seq      int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		m.seq++
		holiday.HolidayID = fmt.Sprintf("hol-%03d", m.seq)
	}
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	for _, h := range m.holidays {
		if sameDay(h.Date, date) {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListByYear(_ context.Context, year int) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if h.Date.Year() == year {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	delete(m.holidays, id)
	return nil
}

// ── 聚合 fixture ──

type mockRepos struct {
	user        *mockUserRepo
	driver      *mockDriverRepo
	driverShift *mockDriverShiftRepo
	shift       *mockShiftRepo
	schedule    *mockScheduleRepo
	replacement *mockReplacementRepo
	overtime    *mockOvertimeRepo
	pattern     *mockDayoffPatternRepo
	holiday     *mockHolidayRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	shiftRepo := newMockShiftRepo()
	driverShiftRepo := newMockDriverShiftRepo(shiftRepo)
	driverRepo := newMockDriverRepo(driverShiftRepo)
	scheduleRepo := newMockScheduleRepo()
	replacementRepo := newMockReplacementRepo()
	overtimeRepo := newMockOvertimeRepo()

	scheduleRepo.replacements = replacementRepo
	scheduleRepo.drivers = driverRepo
	replacementRepo.schedules = scheduleRepo
	replacementRepo.drivers = driverRepo
	replacementRepo.shifts = shiftRepo
	overtimeRepo.drivers = driverRepo

	mocks := &mockRepos{
		user:        newMockUserRepo(),
		driver:      driverRepo,
		driverShift: driverShiftRepo,
		shift:       shiftRepo,
		schedule:    scheduleRepo,
		replacement: replacementRepo,
		overtime:    overtimeRepo,
		pattern:     newMockDayoffPatternRepo(),
		holiday:     newMockHolidayRepo(),
	}
	repo := &repository.Repository{
		User:          mocks.user,
		Driver:        mocks.driver,
		DriverShift:   mocks.driverShift,
		Shift:         mocks.shift,
		Schedule:      mocks.schedule,
		Replacement:   mocks.replacement,
		Overtime:      mocks.overtime,
		DayoffPattern: mocks.pattern,
		Holiday:       mocks.holiday,
	}
	return repo, mocks
}
