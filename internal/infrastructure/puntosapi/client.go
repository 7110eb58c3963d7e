package puntosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/orekiez/pudu-field/internal/config"
	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/orekiez/pudu-field/internal/domain/repository"
	apperrors "github.com/orekiez/pudu-field/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient builds the repository implementation backed by the remote
// /api/puntos/ collection. All calls are fail fast: one request, one
// answer, no retries.
func NewClient(cfg *config.RemoteConfig, logger *zap.Logger) repository.PuntoRepository {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: base,
		logger:  logger,
	}
}

// itemURL keeps the trailing-slash convention the server expects on
// item resources.
func (c *client) itemURL(id int64) string {
	return fmt.Sprintf("%s%d/", c.baseURL, id)
}

func (c *client) List(ctx context.Context) ([]domain.Punto, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		c.logger.Error("Failed to create list request", zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to list puntos", zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read listing body", zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Puntos API returned error on list",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, apperrors.ErrRemoteUnavailable
	}

	// The server is not fully trusted to always return a list: an error
	// page or an object body must surface as MalformedListing, never as
	// a phantom collection.
	var puntos []domain.Punto
	if err := json.Unmarshal(body, &puntos); err != nil {
		c.logger.Error("Listing body is not a puntos array",
			zap.String("body", string(body)),
			zap.Error(err))
		return nil, apperrors.ErrMalformedListing
	}

	c.logger.Debug("Listed puntos", zap.Int("count", len(puntos)))
	return puntos, nil
}

func (c *client) Create(ctx context.Context, draft domain.Punto) (*domain.Punto, error) {
	// A draft never carries an identity to the server.
	draft.ID = nil
	return c.send(ctx, http.MethodPost, c.baseURL, &draft)
}

func (c *client) Update(ctx context.Context, id int64, draft domain.Punto) (*domain.Punto, error) {
	draft.ID = &id
	return c.send(ctx, http.MethodPut, c.itemURL(id), &draft)
}

func (c *client) Delete(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		c.logger.Error("Failed to create delete request", zap.Error(err))
		return apperrors.ErrRemoteUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to delete punto", zap.Int64("id", id), zap.Error(err))
		return apperrors.ErrRemoteUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Puntos API returned error on delete",
			zap.Int64("id", id),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return c.writeError(resp.StatusCode)
	}

	c.logger.Debug("Deleted punto", zap.Int64("id", id))
	return nil
}

func (c *client) send(ctx context.Context, method, url string, draft *domain.Punto) (*domain.Punto, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		c.logger.Error("Failed to encode draft", zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create write request", zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to write punto",
			zap.String("method", method),
			zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Puntos API returned error on write",
			zap.String("method", method),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, c.writeError(resp.StatusCode)
	}

	var stored domain.Punto
	if err := json.Unmarshal(body, &stored); err != nil {
		c.logger.Error("Failed to decode stored punto",
			zap.String("body", string(body)),
			zap.Error(err))
		return nil, apperrors.ErrRemoteUnavailable
	}

	c.logger.Debug("Wrote punto",
		zap.String("method", method),
		zap.String("nombre", stored.Nombre))
	return &stored, nil
}

// writeError separates "the server said no" from "the server is in
// trouble"; both abandon the operation either way.
func (c *client) writeError(status int) error {
	if status >= 400 && status < 500 {
		return apperrors.ErrWriteRejected
	}
	return apperrors.ErrRemoteUnavailable
}
