package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

// Client клиент для работы со StaffService
// Все запросы выполняются от имени вызывающего: его bearer-токен
// прокидывается дальше, поэтому 401/403 от StaffService означают
// проблему сессии самого пользователя, а не сервиса.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
// cache может быть nil - тогда каждый запрос идет в StaffService напрямую
func NewClient(baseURL string, timeout time.Duration, cache Cache, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetStaff получает сотрудника по ID
func (c *Client) GetStaff(ctx context.Context, token string, staffID int64) (*domain.StaffMember, error) {
	var staff StaffMember
	cacheKey := fmt.Sprintf("staffservice:staff:%d", staffID)

	if err := c.getJSON(ctx, token, fmt.Sprintf("/staff/%d", staffID), cacheKey, &staff); err != nil {
		if err == errNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	return staff.ToDomain(), nil
}

// GetSchedule получает недельное расписание сотрудника
// Диапазоны приходят строками "h:mm A - h:mm A" и отдаются дальше как есть:
// разбором занимается internal/schedule
func (c *Client) GetSchedule(ctx context.Context, token string, staffID int64) (domain.WeekSchedule, error) {
	var schedule Schedule
	cacheKey := fmt.Sprintf("staffservice:schedule:%d", staffID)

	if err := c.getJSON(ctx, token, fmt.Sprintf("/staff/schedule/%d", staffID), cacheKey, &schedule); err != nil {
		if err == errNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	return schedule.WorkingHours, nil
}

// GetService получает услугу по ID (для сверки ожидаемой длительности)
func (c *Client) GetService(ctx context.Context, token string, serviceID int64) (*domain.SalonService, error) {
	var service Service
	cacheKey := fmt.Sprintf("staffservice:service:%d", serviceID)

	if err := c.getJSON(ctx, token, fmt.Sprintf("/services/%d", serviceID), cacheKey, &service); err != nil {
		if err == errNotFound {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	return service.ToDomain(), nil
}

// sentinel для маппинга 404 на доменные ошибки в вызывающих методах
var errNotFound = fmt.Errorf("staffservice client: not found")

// getJSON выполняет GET-запрос с bearer-токеном и кэшированием ответа
// Кэш fail-open: его ошибки логируются и не прерывают запрос.
// Записи кэша общие для всех вызывающих: попадание пропускает запрос
// к StaffService вместе с его проверкой 401/403, поэтому отзыв токена
// на стороне StaffService вступает в силу не позднее TTL записи
func (c *Client) getJSON(ctx context.Context, token, path, cacheKey string, out interface{}) error {
	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			c.log.Warn("staffservice: cache get failed for %s: %v", cacheKey, err)
		} else if ok {
			if err := json.Unmarshal(cached, out); err == nil {
				return nil
			}
			// Испорченное значение в кэше - идем в сервис
			c.log.Warn("staffservice: corrupted cache entry for %s", cacheKey)
		}
	}

	body, err := c.doGet(ctx, token, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL); err != nil {
			c.log.Warn("staffservice: cache set failed for %s: %v", cacheKey, err)
		}
	}

	return nil
}

func (c *Client) doGet(ctx context.Context, token, path string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout и сетевые ошибки - сервис недоступен, операция повторяема
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrInvalidResponse, err)
	}

	return body, nil
}
