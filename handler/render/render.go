package render

import (
	"encoding/json"
	"net/http"

	"pledge/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(H{"data": v}); err != nil {
		logrus.Errorln("render json:", err)
	}
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(t)); err != nil {
		logrus.Errorln("render text:", err)
	}
}

// Error writes an error response, mapping business codes to http status
func Error(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(codes.HTTPStatus(err))

	body := H{"code": codes.Code(err), "msg": err.Error()}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorln("render error:", err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	body := H{"code": codes.Code(err), "msg": err.Error()}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorln("render error:", err)
	}
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	body := H{"code": codes.Code(err), "msg": err.Error()}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorln("render error:", err)
	}
}
