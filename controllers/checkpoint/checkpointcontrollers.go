package checkpointcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/juancarlosGilardi/flask-marcaciones/models"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// List returns the active checkpoint registry.
func (h *Handler) List(c *gin.Context) {
	var checkpoints []models.Checkpoint
	if err := h.DB.Where("is_active = ?", true).Order("name").Find(&checkpoints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkpoints": checkpoints})
}
