package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func SendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	if _, err := SendJSON(w, v); err != nil {
		log.WithFields(logrus.Fields{
			"data":  v,
			"error": err,
		}).Error("failed to send data")
	}
}

func SendErrorOrLog(w http.ResponseWriter, log *logrus.Logger, e error) {
	if _, err := SendJSON(w, map[string]string{
		"error": e.Error(),
	}); err != nil {
		log.WithFields(logrus.Fields{
			"sent error": e,
			"error":      err,
		}).Error("failed to send error message")
	}
}
