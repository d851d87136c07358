package wrappers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/order"
	myErr "storefront-console/internal/types/errors"
	typesOrder "storefront-console/internal/types/order"
	"storefront-console/internal/types/record"

	"go.uber.org/zap"
)

// Resource - вид коллекции на бэкенде, используется в путях и метриках
type Resource string

const (
	Advertisements Resource = "advertisements"
	Orders         Resource = "orders"
)

// BackendWrapper обертка над REST бэкендом продавца.
// Реализует advertisement.AdvertisementRepo и order.OrderRepo.
type BackendWrapper struct {
	BaseURL string
	Client  *http.Client
	Logger  *zap.SugaredLogger
}

func NewBackendWrapper(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *BackendWrapper {
	return &BackendWrapper{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// FetchAdvertisements - GET /advertisements
func (bw *BackendWrapper) FetchAdvertisements(ctx context.Context) ([]advertisement.Advertisement, error) {
	var raw []record.Record
	if err := bw.fetchCollection(ctx, Advertisements, &raw); err != nil {
		return nil, err
	}

	return advertisement.FromRecords(raw), nil
}

// GetAdvertisement - GET /advertisements/:id
// Пустой ответ или null считаются отсутствием объявления, а не ошибкой сети.
func (bw *BackendWrapper) GetAdvertisement(ctx context.Context, id string) (*advertisement.Advertisement, error) {
	var raw record.Record
	err := bw.do(ctx, Advertisements, http.MethodGet, entityPath(Advertisements, id), nil, &raw)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, myErr.ErrNotFound
		}
		return nil, err
	}
	if raw == nil {
		return nil, myErr.ErrNotFound
	}

	ad := advertisement.FromRecord(raw)
	return &ad, nil
}

// CreateAdvertisement - POST /advertisements
func (bw *BackendWrapper) CreateAdvertisement(ctx context.Context, a advertisement.NewAdvertisement) (*advertisement.Advertisement, error) {
	var raw record.Record
	if err := bw.do(ctx, Advertisements, http.MethodPost, "/"+string(Advertisements), a, &raw); err != nil {
		return nil, bw.emptyBody(err, Advertisements)
	}
	if raw == nil {
		return nil, &myErr.BackendError{StatusCode: http.StatusOK, Message: "empty response on create"}
	}

	created := advertisement.FromRecord(raw)
	return &created, nil
}

// UpdateAdvertisement - PATCH /advertisements/:id
func (bw *BackendWrapper) UpdateAdvertisement(ctx context.Context, id string, p advertisement.Patch) (*advertisement.Advertisement, error) {
	var raw record.Record
	if err := bw.do(ctx, Advertisements, http.MethodPatch, entityPath(Advertisements, id), p, &raw); err != nil {
		return nil, bw.emptyBody(err, Advertisements)
	}
	if raw == nil {
		return nil, myErr.ErrNotFound
	}

	updated := advertisement.FromRecord(raw)
	return &updated, nil
}

// DeleteAdvertisement - DELETE /advertisements/:id
func (bw *BackendWrapper) DeleteAdvertisement(ctx context.Context, id string) error {
	return bw.do(ctx, Advertisements, http.MethodDelete, entityPath(Advertisements, id), nil, nil)
}

// FetchOrders - GET /orders, заказы без массива items отбрасываются
func (bw *BackendWrapper) FetchOrders(ctx context.Context) ([]order.Order, error) {
	var raw []record.Record
	if err := bw.fetchCollection(ctx, Orders, &raw); err != nil {
		return nil, err
	}

	orders := order.FromRecords(raw)
	if dropped := len(raw) - len(orders); dropped > 0 {
		bw.Logger.Warnf("dropped %d malformed orders", dropped)
	}

	return orders, nil
}

// UpdateOrder - PATCH /orders/:id
func (bw *BackendWrapper) UpdateOrder(ctx context.Context, id string, patch typesOrder.UpdateStatus) (*order.Order, error) {
	var raw record.Record
	if err := bw.do(ctx, Orders, http.MethodPatch, entityPath(Orders, id), patch, &raw); err != nil {
		return nil, bw.emptyBody(err, Orders)
	}
	if raw == nil {
		return nil, myErr.ErrNotFound
	}

	o, ok := order.FromRecord(raw)
	if !ok {
		// бэкенд мог вернуть только измененные поля
		return &order.Order{ID: id, Status: order.Status(patch.Status)}, nil
	}
	return &o, nil
}

func (bw *BackendWrapper) fetchCollection(ctx context.Context, resource Resource, out *[]record.Record) error {
	err := bw.do(ctx, resource, http.MethodGet, "/"+string(resource), nil, out)
	if errors.Is(err, io.EOF) {
		*out = nil
		return nil
	}
	return err
}

func (bw *BackendWrapper) emptyBody(err error, resource Resource) error {
	if errors.Is(err, io.EOF) {
		bw.Logger.Warnf("backend returned empty body for %s", resource)
		return &myErr.BackendError{StatusCode: http.StatusOK, Message: "empty response"}
	}
	return err
}

// do выполняет запрос и классифицирует результат:
// отмена ctx -> ErrCanceled, 404 -> ErrNotFound, прочие не-2xx -> *BackendError,
// ошибка транспорта -> ErrNetwork. Пустое тело при out != nil возвращается как io.EOF.
func (bw *BackendWrapper) do(ctx context.Context, resource Resource, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, bw.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := bw.Client.Do(req)
	if err != nil {
		if canceled(ctx) {
			observeBackend(resource, method, "canceled", start)
			return myErr.ErrCanceled
		}
		observeBackend(resource, method, "error", start)
		bw.Logger.Errorf("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %v", myErr.ErrNetwork, err)
	}
	defer resp.Body.Close()

	observeBackend(resource, method, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body) // nolint:errcheck
		return myErr.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) // nolint:errcheck
		bw.Logger.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
		return &myErr.BackendError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body) // nolint:errcheck
		if canceled(ctx) {
			return myErr.ErrCanceled
		}
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if canceled(ctx) {
			return myErr.ErrCanceled
		}
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		bw.Logger.Errorf("failed to decode %s %s response: %v", method, path, err)
		return fmt.Errorf("%w: invalid response body: %v", myErr.ErrBackend, err)
	}

	// ответ пришел, но запрос к этому моменту уже отменен - результат не применяем
	if canceled(ctx) {
		return myErr.ErrCanceled
	}

	return nil
}

func canceled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func entityPath(resource Resource, id string) string {
	return "/" + string(resource) + "/" + url.PathEscape(id)
}
