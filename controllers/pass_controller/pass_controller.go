package pass_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/pass_models"
	"github.com/lfreelance/Bhimsons/utils/api"
)

// PassController serves the public pass catalogue.
type PassController struct {
	DB *pgxpool.Pool
}

func NewPassController(db *pgxpool.Pool) (*PassController, error) {
	if db == nil {
		return nil, errors.New("database pool is required")
	}
	return &PassController{DB: db}, nil
}

// ListPasses returns every active pass ordered for display.
func (pc *PassController) ListPasses(c *gin.Context) {
	passes, err := pass_models.GetActivePasses(c.Request.Context(), pc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list passes: %v", err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load passes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"passes":  passes,
	})
}

// GetPass returns a single pass by id, active or not.
func (pc *PassController) GetPass(c *gin.Context) {
	passID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid pass id")
		return
	}

	pass, err := pass_models.GetPassByID(c.Request.Context(), pc.DB, passID)
	if err != nil {
		if errors.Is(err, pass_models.ErrPassNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Pass not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load pass %s: %v", passID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load pass")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pass":    pass,
	})
}
