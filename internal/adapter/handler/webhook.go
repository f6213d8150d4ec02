package handler

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/errors"
	"github.com/johnquangdev/meeting-archive/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-archive/internal/usecase/archive"
	"github.com/johnquangdev/meeting-archive/pkg/signature"
)

// SignatureHeader carries the hex sha256 HMAC of the request body
const SignatureHeader = "X-Archive-Signature"

const maxWebhookBody = 64 << 10

// webhookPayload is informational; any signed body triggers a reload
type webhookPayload struct {
	Event  string `json:"event"`
	Object string `json:"object"`
}

// ArchiveWebhook reloads the archive when the upstream document changes
type ArchiveWebhook struct {
	service archive.Service
	secret  string
	logger  *zap.Logger
}

// NewArchiveWebhook creates a new webhook handler
func NewArchiveWebhook(service archive.Service, secret string, logger *zap.Logger) *ArchiveWebhook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveWebhook{service: service, secret: secret, logger: logger}
}

// HandleArchiveUpdated handles POST /v1/archive/webhook
func (h *ArchiveWebhook) HandleArchiveUpdated(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody+1))
	if err != nil || len(body) > maxWebhookBody {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if !signature.Verify(h.secret, body, c.Request().Header.Get(SignatureHeader)) {
		h.logger.Warn("archive.webhook.bad_signature",
			zap.String("request_id", getRequestID(c)),
			zap.String("remote_ip", c.RealIP()),
		)
		return HandleError(h.logger, c, errors.ErrBadSignature())
	}

	var payload webhookPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
	}
	h.logger.Info("archive.webhook.received",
		zap.String("request_id", getRequestID(c)),
		zap.String("event", payload.Event),
		zap.String("object", payload.Object),
	)

	snap, err := h.service.Reload(c.Request().Context(), archive.TriggerWebhook)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReloadFailed(sourceName(h.service), err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(snap))
}
