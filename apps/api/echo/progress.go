package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aulavivo/backend/core/progress"
)

type (
	progressApi struct {
		svc      progress.ServiceInterface
		validate *validator.Validate
	}

	UnlockNextRequest struct {
		UserID int `json:"userId" validate:"required"`
	}
)

func registerProgressAPI(g *echo.Group, svc progress.ServiceInterface, validate *validator.Validate) {
	api := progressApi{
		svc:      svc,
		validate: validate,
	}

	g.POST("/progress", api.updateProgress)
	g.POST("/activities/complete", api.completeActivity)
	g.POST("/lessons/:id/unlock-next", api.unlockNext)
}

// Handlers

func (api *progressApi) updateProgress(ctx echo.Context) error {
	var data progress.ProgressUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.UpdateProgress(ctx.Request().Context(), data.UserID, data.LessonID, *data.Percent)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *progressApi) completeActivity(ctx echo.Context) error {
	var data progress.ActivityCompletion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ActivityCompletion")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.CompleteActivity(ctx.Request().Context(), data.UserID, data.ActivityID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"completed": true})
}

func (api *progressApi) unlockNext(ctx echo.Context) error {
	lessonID, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data UnlockNextRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UnlockNextRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	dec, err := api.svc.UnlockNext(ctx.Request().Context(), data.UserID, lessonID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dec)
}
