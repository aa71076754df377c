package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type backupHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.BackupService
}

func newBackupHandler(service *services.BackupService) backupHandler {
	logger := log.With().Str("handlerName", "backupHandler").Logger()

	return backupHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// exportBackup downloads every collection as one JSON document
func (h backupHandler) exportBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h.service.Export(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filename := fmt.Sprintf("cms-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing backup")
		}
	}
}

// importBackup replaces each collection present in the uploaded document
func (h backupHandler) importBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		restored, err := h.service.Import(r.Context(), data)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Interface("restored", restored).Msg("Backup imported")
		h.responder.WriteJSON(w, map[string]any{"status": "success", "restored": restored})
	}
}
