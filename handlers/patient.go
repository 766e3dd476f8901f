package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labbook/database/repository"
	"labbook/middleware"
	"labbook/models"
	"labbook/services/patient"
)

// PatientHandler serves the account's patient roster.
type PatientHandler struct {
	Patients patient.PatientService
	Logger   *zap.Logger
}

func NewPatientHandler(patients patient.PatientService, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{Patients: patients, Logger: logger}
}

// ListPatients handles GET /api/patients.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	patients, err := h.Patients.ListPatients(c.Request.Context(), acct.AccountID)
	if err != nil {
		h.Logger.Error("ListPatients failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch patients"})
		return
	}
	c.JSON(http.StatusOK, patients)
}

// CreatePatient handles POST /api/patients.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var input models.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	acct, _ := middleware.AccountFromContext(c)
	p, err := h.Patients.CreatePatient(c.Request.Context(), acct.AccountID, input)
	if errors.Is(err, repository.ErrDuplicateNationalID) {
		c.JSON(http.StatusConflict, gin.H{"error": "national identifier already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}
