package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aulavivo/backend/core/course"
	"github.com/aulavivo/backend/core/progress"
)

type (
	courseApi struct {
		svc      course.ServiceInterface
		progSvc  progress.ServiceInterface
		validate *validator.Validate
	}

	EnrollRequest struct {
		UserID int `json:"userId" validate:"required"`
	}
)

func registerCourseAPI(g *echo.Group, svc course.ServiceInterface, progSvc progress.ServiceInterface, validate *validator.Validate) {
	api := courseApi{
		svc:      svc,
		progSvc:  progSvc,
		validate: validate,
	}

	cg := g.Group("/courses/:id")
	cg.GET("", api.retrieve)
	cg.GET("/lessons", api.lessons)
	cg.POST("/enroll", api.enroll)
}

// Handlers

func (api *courseApi) retrieve(ctx echo.Context) error {
	courseID, err := pathID(ctx)
	if err != nil {
		return err
	}
	crs, err := api.svc.Get(ctx.Request().Context(), courseID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

// lessons returns the authoritative course snapshot for a user: lessons in
// canonical order joined with their progress records. The reconciliation
// loop polls this endpoint.
func (api *courseApi) lessons(ctx echo.Context) error {
	courseID, err := pathID(ctx)
	if err != nil {
		return err
	}
	userID, err := strconv.Atoi(ctx.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	view, err := api.progSvc.CourseView(ctx.Request().Context(), userID, courseID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	courseID, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data EnrollRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnrollRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	view, err := api.progSvc.Enroll(ctx.Request().Context(), data.UserID, courseID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, view)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
