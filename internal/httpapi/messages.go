package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
)

// Service and procedure names, laid out the way generated Connect code
// names them.
const (
	AuthServiceName     = "cantineo.v1.AuthService"
	EmployeeServiceName = "cantineo.v1.EmployeeService"
	MealServiceName     = "cantineo.v1.MealService"
	PaymentServiceName  = "cantineo.v1.PaymentService"
	SettingsServiceName = "cantineo.v1.SettingsService"
	ReportServiceName   = "cantineo.v1.ReportService"

	LoginProcedure      = "/" + AuthServiceName + "/Login"
	GetSessionProcedure = "/" + AuthServiceName + "/GetSession"

	ListEmployeesProcedure        = "/" + EmployeeServiceName + "/ListEmployees"
	GetEmployeeProcedure          = "/" + EmployeeServiceName + "/GetEmployee"
	AddEmployeeProcedure          = "/" + EmployeeServiceName + "/AddEmployee"
	RenameEmployeeProcedure       = "/" + EmployeeServiceName + "/RenameEmployee"
	DeleteEmployeeProcedure       = "/" + EmployeeServiceName + "/DeleteEmployee"
	ListEmployeeMealsProcedure    = "/" + EmployeeServiceName + "/ListEmployeeMeals"
	ListEmployeePaymentsProcedure = "/" + EmployeeServiceName + "/ListEmployeePayments"

	ListMealsProcedure = "/" + MealServiceName + "/ListMeals"
	SetMealsProcedure  = "/" + MealServiceName + "/SetMeals"

	RecordPaymentProcedure = "/" + PaymentServiceName + "/RecordPayment"
	ListPaymentsProcedure  = "/" + PaymentServiceName + "/ListPayments"

	GetSettingsProcedure    = "/" + SettingsServiceName + "/GetSettings"
	UpdateSettingsProcedure = "/" + SettingsServiceName + "/UpdateSettings"

	GetDashboardProcedure  = "/" + ReportServiceName + "/GetDashboard"
	GetStatisticsProcedure = "/" + ReportServiceName + "/GetStatistics"
)

type LoginRequest struct {
	PIN string `json:"pin"`
}

type LoginResponse struct {
	AuthRequired bool      `json:"authRequired"`
	Token        string    `json:"token,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitzero"`
}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	AuthRequired bool   `json:"authRequired"`
	Subject      string `json:"subject,omitempty"`
}

// ListEmployeesRequest filters by a case-insensitive name substring; an
// empty Query lists everyone.
type ListEmployeesRequest struct {
	Query string `json:"query,omitempty"`
}

type EmployeeBalance struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MealCount       int             `json:"mealCount"`
	UnpaidMealCount int             `json:"unpaidMealCount"`
	MealsCost       decimal.Decimal `json:"mealsCost"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	Balance         decimal.Decimal `json:"balance"`
}

type ListEmployeesResponse struct {
	Employees []EmployeeBalance `json:"employees"`
}

type GetEmployeeRequest struct {
	ID string `json:"id"`
}

type GetEmployeeResponse struct {
	Employee *models.Employee        `json:"employee"`
	Meals    []*models.MealRecord    `json:"meals"`
	Payments []*models.PaymentRecord `json:"payments"`
	Balance  decimal.Decimal         `json:"balance"`
}

type AddEmployeeRequest struct {
	Name string `json:"name"`
}

type RenameEmployeeRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	Employee *models.Employee `json:"employee"`
}

type DeleteEmployeeRequest struct {
	ID string `json:"id"`
}

type DeleteEmployeeResponse struct{}

type ListEmployeeRecordsRequest struct {
	EmployeeID string `json:"employeeId"`
}

// ListMealsRequest lists the meals of Date, today when empty.
type ListMealsRequest struct {
	Date string `json:"date,omitempty"`
}

type ListMealsResponse struct {
	Meals []*models.MealRecord `json:"meals"`
}

type SetMealsRequest struct {
	Date        string   `json:"date"`
	EmployeeIDs []string `json:"employeeIds"`
}

// RecordPaymentRequest records a payment dated Date, today when empty.
type RecordPaymentRequest struct {
	EmployeeID string          `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date,omitempty"`
}

type RecordPaymentResponse struct {
	Payment        *models.PaymentRecord `json:"payment"`
	AllocatedMeals []*models.MealRecord  `json:"allocatedMeals"`
}

// ListPaymentsRequest lists the payments received on Date, today when empty.
type ListPaymentsRequest struct {
	Date string `json:"date,omitempty"`
}

type ListPaymentsResponse struct {
	Payments []*models.PaymentRecord `json:"payments"`
}

type GetSettingsRequest struct{}

type Settings struct {
	MealPrice decimal.Decimal `json:"mealPrice"`
}

type GetDashboardRequest struct{}

type Dashboard struct {
	Date               string          `json:"date"`
	EmployeeCount      int             `json:"employeeCount"`
	MealsToday         int             `json:"mealsToday"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	MealPrice          decimal.Decimal `json:"mealPrice"`
}

type GetStatisticsRequest struct{}

type DayTotal struct {
	Date  string          `json:"date"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

type EmployeeTotal struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Value      decimal.Decimal `json:"value"`
}

type Statistics struct {
	EmployeeCount      int             `json:"employeeCount"`
	TotalMeals         int             `json:"totalMeals"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	TotalPayments      decimal.Decimal `json:"totalPayments"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	MealPrice          decimal.Decimal `json:"mealPrice"`
	LastWeek           []DayTotal      `json:"lastWeek"`
	Month              []DayTotal      `json:"month"`
	Employees          []EmployeeTotal `json:"employees"`
}
