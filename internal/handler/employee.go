package handler

import (
	"errors"
	"net/http"

	"employee-enrollment/internal/service"
	"employee-enrollment/internal/store"
	"employee-enrollment/internal/util"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler is the JSON side of enrollment: submit, list and the
// category/salary lookups the form needs.
type EmployeeHandler struct {
	Service *service.Service
}

func NewEmployeeHandler(svc *service.Service) *EmployeeHandler {
	return &EmployeeHandler{Service: svc}
}

type employeeResp struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	EnrolledAt    string `json:"enrolled_at"`
	Category      string `json:"category"`
	Salary        string `json:"salary"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name"`
}

type categoryResp struct {
	Name       string `json:"name"`
	Salary     string `json:"salary,omitempty"`
	Predefined bool   `json:"predefined"`
}

func (h *EmployeeHandler) categoryResp(name string) categoryResp {
	amount, ok := h.Service.ResolveSalary(name)
	return categoryResp{Name: name, Salary: amount, Predefined: ok}
}

// CreateEmployee 提交一条入职登记
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req service.EnrollmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	rec, err := h.Service.Submit(req)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, service.Message(err))
		return
	case errors.Is(err, store.ErrDuplicate):
		util.Error(c, http.StatusConflict, util.CodeConflict, service.Message(err))
		return
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, service.Message(err))
		return
	}

	util.Success(c, util.Response{
		"message":  service.Message(nil),
		"employee": toEmployeeResp(rec.Row()),
	})
}

// ListEmployees 返回全部登记记录（文件顺序）
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	records, err := h.Service.Records()
	if errors.Is(err, store.ErrNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, service.MsgNoDatabase)
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error reading database: "+err.Error())
		return
	}

	items := make([]employeeResp, 0, len(records))
	for _, rec := range records {
		items = append(items, toEmployeeResp(rec.Row()))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

// ListCategories returns the form's category options.
func (h *EmployeeHandler) ListCategories(c *gin.Context) {
	names := h.Service.Salaries().Categories()
	items := make([]categoryResp, 0, len(names))
	for _, name := range names {
		items = append(items, h.categoryResp(name))
	}
	util.Success(c, util.Response{
		"items": items,
	})
}

// ResolveSalary looks up ?category=; predefined=false means free input.
func (h *EmployeeHandler) ResolveSalary(c *gin.Context) {
	category := c.Query("category")
	if err := util.ValidateRequired("category", category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	resp := h.categoryResp(category)
	util.Success(c, util.Response{
		"category":   resp.Name,
		"salary":     resp.Salary,
		"predefined": resp.Predefined,
	})
}

// row is in models.Header order.
func toEmployeeResp(row []string) employeeResp {
	return employeeResp{
		Name:          row[0],
		Role:          row[1],
		EnrolledAt:    row[2],
		Category:      row[3],
		Salary:        row[4],
		AccountNumber: row[5],
		AccountName:   row[6],
		BankName:      row[7],
	}
}
