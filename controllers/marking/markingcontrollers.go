package markingcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/juancarlosGilardi/flask-marcaciones/attendance"
	"github.com/juancarlosGilardi/flask-marcaciones/helper"
	"github.com/juancarlosGilardi/flask-marcaciones/location"
	"github.com/juancarlosGilardi/flask-marcaciones/middlewares"
	"github.com/juancarlosGilardi/flask-marcaciones/notify"
)

// Handler wires the read-only validation engine and the attendance
// sequencer behind the marking endpoints. All collaborators are injected.
type Handler struct {
	DB        *gorm.DB
	Validator *location.Validator
	Sequencer *attendance.Sequencer
	Notifier  notify.Notifier
	Region    location.Bounds
}

func NewHandler(db *gorm.DB, v *location.Validator, seq *attendance.Sequencer, n notify.Notifier, region location.Bounds) *Handler {
	return &Handler{DB: db, Validator: v, Sequencer: seq, Notifier: n, Region: region}
}

// RegisterValidations adds the marking-kind rule to gin's validator engine.
// Call once before building the router.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("markingkind", func(fl validator.FieldLevel) bool {
			_, err := attendance.ParseKind(fl.Field().String())
			return err == nil
		})
	}
}

type MarkRequest struct {
	QRCode        string   `json:"qrCode" binding:"required"`
	MarcationType string   `json:"marcationType" binding:"required,markingkind"`
	Latitude      *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Accuracy      *float64 `json:"accuracy" binding:"omitempty,gte=0"`
}

type ValidateRequest struct {
	QRCode    string   `json:"qrCode" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Accuracy  *float64 `json:"accuracy" binding:"omitempty,gte=0"`
}

type QRInfoRequest struct {
	QRCode string `json:"qrCode" binding:"required"`
}

// Mark runs the full pipeline: geofence validation, then the sequencer's
// state transition, then the fire-and-forget notification.
func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	coord, err := location.New(*req.Latitude, *req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.Validator.Validate(coord, req.QRCode, req.Accuracy)
	if !report.OverallValid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  report.PrimaryIssue,
			"report": report,
			"code":   "LOCATION_VALIDATION_FAILED",
		})
		return
	}

	kind, err := attendance.ParseKind(req.MarcationType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := attendance.Identity{
		Name:     user.Name,
		Email:    user.Email,
		Dni:      user.Dni,
		DeviceID: user.DeviceID,
	}

	requestID := middlewares.GetRequestID(c)

	record, err := h.Sequencer.Mark(c.Request.Context(), identity, kind, coord)
	if err != nil {
		var conflict *attendance.ConflictError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Reason, "code": "MARKING_CONFLICT"})
		case errors.Is(err, attendance.ErrLockWait):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "marking is busy, please retry", "code": "RETRY_LATER"})
		default:
			log.Printf("[%s] marking failed for %s: %v", requestID, user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error processing the marking", "code": "INTERNAL_SERVER_ERROR"})
		}
		return
	}

	// Entry and Exit notify a side channel; delivery problems must never
	// undo or fail an accepted marking.
	if kind == attendance.Entry || kind == attendance.Exit {
		go func(reqID, name, email, dni, kindStr string) {
			if err := h.Notifier.SendMarking(name, email, dni, kindStr); err != nil {
				log.Printf("[%s] notification failed for %s (%s): %v", reqID, email, kindStr, err)
			}
		}(requestID, user.Name, user.Email, user.Dni, string(kind))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": string(kind) + " recorded successfully",
		"record":  record,
		"report":  report,
	})
}

// Validate evaluates the geofence report without persisting anything.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coord, err := location.New(*req.Latitude, *req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.Validator.Validate(coord, req.QRCode, req.Accuracy)
	c.JSON(http.StatusOK, gin.H{
		"valid":   report.OverallValid,
		"report":  report,
		"summary": report.PrimaryIssue,
	})
}

// QRInfo parses a QR payload and describes the checkpoint it names.
func (h *Handler) QRInfo(c *gin.Context) {
	var req QRInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := location.ParseQR(req.QRCode)
	response := gin.H{"qr": payload}
	if payload.Coordinates != nil {
		response["in_region"] = h.Region.Contains(*payload.Coordinates)
		response["location"] = payload.Coordinates.String()
	}
	c.JSON(http.StatusOK, response)
}

// Today returns the caller's four time slots for the current date.
func (h *Handler) Today(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	record, err := h.Sequencer.Today(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error querying today's markings"})
		return
	}
	if record == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry_time":       record.EntryTime,
		"break_start_time": record.BreakStart,
		"break_end_time":   record.BreakEnd,
		"exit_time":        record.ExitTime,
	})
}

// History lists the caller's recent records, newest first, with a predicted
// exit time while the current day is still open.
func (h *Handler) History(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	records, err := h.Sequencer.History(c.Request.Context(), user.Email, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error querying marking history"})
		return
	}

	response := gin.H{"history": records}
	if len(records) > 0 && records[0].EntryTime != nil && records[0].ExitTime == nil {
		training, err := helper.ExitTimeTrainingData(h.DB, user.Email)
		if err == nil && len(training) > 0 {
			if predicted, err := helper.PredictExitTime(training, *records[0].EntryTime); err == nil {
				response["predicted_exit_time"] = predicted
			} else {
				log.Printf("[%s] exit time prediction failed for %s: %v", middlewares.GetRequestID(c), user.Email, err)
			}
		}
	}
	c.JSON(http.StatusOK, response)
}
