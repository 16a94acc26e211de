package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"meme-bot/internal/domain/entity"
	"meme-bot/internal/domain/port"
)

// UploadPath путь эндпоинта анализа.
const UploadPath = "/upload"

// HTTPClient отправляет изображения в сервис анализа эмоций.
// Таймаута нет: запрос прерывается только отменой контекста.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

// NewHTTPClient создаёт клиента для сервиса по адресу baseURL.
// Если httpClient == nil, используется клиент без таймаута.
func NewHTTPClient(baseURL string, httpClient *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse analyzer url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("analyzer url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{baseURL: u, http: httpClient}, nil
}

// errorResponse тело ответа при ошибке
type errorResponse struct {
	Error string `json:"error"`
}

// Analyze отправляет изображение multipart-запросом в поле "file".
func (c *HTTPClient) Analyze(ctx context.Context, payload entity.ImagePayload) (*entity.AnalysisResult, error) {
	body, err := payload.Open(ctx)
	if err != nil {
		return nil, uploadFailed(fmt.Errorf("open image: %w", err))
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer body.Close()
		pw.CloseWithError(writeMultipart(mw, payload, body))
	}()

	endpoint := c.baseURL.JoinPath(UploadPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), pr)
	if err != nil {
		pr.Close()
		return nil, uploadFailed(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		pr.Close()
		return nil, uploadFailed(fmt.Errorf("post %s: %w", endpoint, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, uploadFailed(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		if jsonErr := json.Unmarshal(data, &er); jsonErr == nil && er.Error != "" {
			return nil, entity.NewUserError(entity.ErrUploadFailed, er.Error, fmt.Errorf("status %d", resp.StatusCode))
		}
		return nil, uploadFailed(fmt.Errorf("status %d", resp.StatusCode))
	}

	var result entity.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, uploadFailed(fmt.Errorf("decode response: %w", err))
	}

	result.OriginalImage = c.resolve(result.OriginalImage)
	result.MemeImage = c.resolve(result.MemeImage)

	log.Debug().
		Str("endpoint", endpoint.String()).
		Int("status", resp.StatusCode).
		Str("emotion", result.Emotion).
		Msg("analyzer response")

	return &result, nil
}

// resolve превращает относительные ссылки на картинки в абсолютные.
func (c *HTTPClient) resolve(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

func writeMultipart(mw *multipart.Writer, payload entity.ImagePayload, body io.Reader) error {
	name := payload.Name
	if name == "" {
		name = "image"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	h.Set("Content-Type", payload.MediaType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, body); err != nil {
		return err
	}
	return mw.Close()
}

func uploadFailed(cause error) error {
	return entity.NewUserError(entity.ErrUploadFailed, entity.MsgUploadFailed, cause)
}

// Проверка реализации интерфейса
var _ port.Analyzer = (*HTTPClient)(nil)
