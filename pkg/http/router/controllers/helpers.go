package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := errorResponseBody{}
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message

	if err := writeJSON(w, status, envelope{"error": resp.Error}, nil); err != nil {
		log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func BadRequestResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(log, w, r, http.StatusBadRequest, err.Error())
}

func NotFoundResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(log, w, r, http.StatusNotFound, err.Error())
}

func ServerErrorResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	log.Error("internal server error", zap.Error(err), zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	errorResponse(log, w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// ErrorCodeResponse. map the error code of err to its status
func ErrorCodeResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		BadRequestResponse(log, w, r, err)
	case util.ErrNotFound:
		NotFoundResponse(log, w, r, err)
	default:
		ServerErrorResponse(log, w, r, err)
	}
}

var (
	validate = validator.New()
	trans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}

	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func validateRequest(request interface{}) error {
	if err := validate.Struct(request); err != nil {
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

func parseFloatParam(query map[string][]string, name string) (float64, error) {
	values := query[name]
	if len(values) == 0 {
		return 0, fmt.Errorf("%s is required and must be a valid float", name)
	}
	v, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s is required and must be a valid float", name)
	}
	return v, nil
}
