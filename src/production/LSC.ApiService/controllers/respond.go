package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/middleware"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
)

// respondError writes err as {"error", "code"}. Causes wrapped in an APIError are never sent.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var apiErr *api_models.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message, "code": apiErr.Code})
		return
	}

	middleware.GetLogger(c, log).ErrorWithError(err, "Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal Server Error",
		"code":  api_models.ErrorCodeInternal,
	})
}

// respondAttachment sends body as a downloadable JSON file
func respondAttachment(c *gin.Context, filename string, body any) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, body)
}

// readingView is a reading with its classified labels
type readingView struct {
	lscmodels.Reading
	Level lscmodels.WelfareLevel  `json:"welfareLevel"`
	Kind  lscmodels.ConditionKind `json:"conditionKind"`
}

func readingViews(readings []lscmodels.Reading) []readingView {
	views := make([]readingView, 0, len(readings))
	for _, r := range readings {
		views = append(views, readingView{Reading: r, Level: r.WelfareLevel(), Kind: r.ConditionKind()})
	}
	return views
}
