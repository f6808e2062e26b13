package httpapi

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/cantineo/internal/auth"
	"github.com/mmynk/cantineo/internal/calculator"
	"github.com/mmynk/cantineo/internal/middleware"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

func (s *Server) login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	if !s.AuthEnabled() {
		return connect.NewResponse(&LoginResponse{AuthRequired: false}), nil
	}

	if err := s.authenticator.Authenticate(ctx, req.Msg.PIN); err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expires, err := s.jwt.Generate(auth.OperatorSubject)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&LoginResponse{AuthRequired: true, Token: token, ExpiresAt: expires}), nil
}

// getSession reports who the caller is. With authentication on it sits
// behind RequireAuth, so reaching it means the token is valid.
func (s *Server) getSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return connect.NewResponse(&GetSessionResponse{
		AuthRequired: s.AuthEnabled(),
		Subject:      middleware.GetSubject(ctx),
	}), nil
}

func (s *Server) listEmployees(ctx context.Context, req *connect.Request[ListEmployeesRequest]) (*connect.Response[ListEmployeesResponse], error) {
	price, err := s.settings.GetMealPrice(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	balances, err := s.employees.ListWithBalances(ctx, price, req.Msg.Query)
	if err != nil {
		return nil, connectError(err)
	}

	employees := make([]EmployeeBalance, len(balances))
	for i, b := range balances {
		employees[i] = EmployeeBalance{
			ID:              b.EmployeeID,
			Name:            b.Name,
			MealCount:       b.MealCount,
			UnpaidMealCount: b.UnpaidMealCount,
			MealsCost:       b.MealsCost,
			TotalPaid:       b.TotalPaid,
			Balance:         b.Balance,
		}
	}
	return connect.NewResponse(&ListEmployeesResponse{Employees: employees}), nil
}

func (s *Server) getEmployee(ctx context.Context, req *connect.Request[GetEmployeeRequest]) (*connect.Response[GetEmployeeResponse], error) {
	employee, err := s.employees.Get(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	if employee == nil {
		return nil, connectError(fmt.Errorf("%w: %s", storage.ErrEmployeeNotFound, req.Msg.ID))
	}

	price, err := s.settings.GetMealPrice(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&GetEmployeeResponse{
		Employee: &employee.Employee,
		Meals:    nonNil(employee.Meals),
		Payments: nonNil(employee.Payments),
		Balance:  calculator.Balance(employee.ID, employee.Meals, employee.Payments, price),
	}), nil
}

func (s *Server) addEmployee(ctx context.Context, req *connect.Request[AddEmployeeRequest]) (*connect.Response[EmployeeResponse], error) {
	employee, err := s.employees.Add(ctx, req.Msg.Name)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&EmployeeResponse{Employee: employee}), nil
}

func (s *Server) renameEmployee(ctx context.Context, req *connect.Request[RenameEmployeeRequest]) (*connect.Response[EmployeeResponse], error) {
	employee, err := s.employees.Rename(ctx, req.Msg.ID, req.Msg.Name)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&EmployeeResponse{Employee: employee}), nil
}

func (s *Server) deleteEmployee(ctx context.Context, req *connect.Request[DeleteEmployeeRequest]) (*connect.Response[DeleteEmployeeResponse], error) {
	if err := s.employees.Delete(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteEmployeeResponse{}), nil
}

func (s *Server) listEmployeeMeals(ctx context.Context, req *connect.Request[ListEmployeeRecordsRequest]) (*connect.Response[ListMealsResponse], error) {
	meals, err := s.meals.ListForEmployee(ctx, req.Msg.EmployeeID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListMealsResponse{Meals: nonNil(meals)}), nil
}

func (s *Server) listEmployeePayments(ctx context.Context, req *connect.Request[ListEmployeeRecordsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	payments, err := s.payments.ListForEmployee(ctx, req.Msg.EmployeeID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListPaymentsResponse{Payments: nonNil(payments)}), nil
}

func (s *Server) listMeals(ctx context.Context, req *connect.Request[ListMealsRequest]) (*connect.Response[ListMealsResponse], error) {
	meals, err := s.meals.ListForDate(ctx, s.dateOrToday(req.Msg.Date))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListMealsResponse{Meals: nonNil(meals)}), nil
}

func (s *Server) setMeals(ctx context.Context, req *connect.Request[SetMealsRequest]) (*connect.Response[ListMealsResponse], error) {
	meals, err := s.meals.SetMealsForDate(ctx, req.Msg.Date, req.Msg.EmployeeIDs)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListMealsResponse{Meals: nonNil(meals)}), nil
}

func (s *Server) recordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	price, err := s.settings.GetMealPrice(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	payment, allocated, err := s.payments.RecordPaymentAndAllocate(ctx, req.Msg.EmployeeID, req.Msg.Amount, s.dateOrToday(req.Msg.Date), price)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&RecordPaymentResponse{Payment: payment, AllocatedMeals: nonNil(allocated)}), nil
}

func (s *Server) listPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	payments, err := s.payments.ListForDate(ctx, s.dateOrToday(req.Msg.Date))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListPaymentsResponse{Payments: nonNil(payments)}), nil
}

func (s *Server) getSettings(ctx context.Context, req *connect.Request[GetSettingsRequest]) (*connect.Response[Settings], error) {
	price, err := s.settings.GetMealPrice(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&Settings{MealPrice: price}), nil
}

func (s *Server) updateSettings(ctx context.Context, req *connect.Request[Settings]) (*connect.Response[Settings], error) {
	if err := s.settings.SetMealPrice(ctx, req.Msg.MealPrice); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&Settings{MealPrice: req.Msg.MealPrice}), nil
}

func (s *Server) getDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[Dashboard], error) {
	d, err := s.reports.Dashboard(ctx, s.now())
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&Dashboard{
		Date:               d.Date,
		EmployeeCount:      d.EmployeeCount,
		MealsToday:         d.MealsToday,
		OutstandingBalance: d.OutstandingBalance,
		MealPrice:          d.MealPrice,
	}), nil
}

func (s *Server) getStatistics(ctx context.Context, req *connect.Request[GetStatisticsRequest]) (*connect.Response[Statistics], error) {
	stats, err := s.reports.Statistics(ctx, s.now())
	if err != nil {
		return nil, connectError(err)
	}

	employees := make([]EmployeeTotal, len(stats.Employees))
	for i, e := range stats.Employees {
		employees[i] = EmployeeTotal{EmployeeID: e.EmployeeID, Name: e.Name, Count: e.Count, Value: e.Value}
	}
	return connect.NewResponse(&Statistics{
		EmployeeCount:      stats.Summary.EmployeeCount,
		TotalMeals:         stats.Summary.TotalMeals,
		TotalValue:         stats.Summary.TotalValue,
		TotalPayments:      stats.Summary.TotalPayments,
		OutstandingBalance: stats.Summary.OutstandingBalance,
		MealPrice:          stats.MealPrice,
		LastWeek:           dayTotals(stats.LastWeek),
		Month:              dayTotals(stats.Month),
		Employees:          employees,
	}), nil
}

func (s *Server) dateOrToday(date string) string {
	if date == "" {
		return models.FormatDate(s.now())
	}
	return date
}

func dayTotals(totals []calculator.DayTotal) []DayTotal {
	out := make([]DayTotal, len(totals))
	for i, t := range totals {
		out[i] = DayTotal{Date: t.Date, Count: t.Count, Value: t.Value}
	}
	return out
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
