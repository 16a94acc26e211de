package app

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"meme-bot/internal/domain/entity"
	"meme-bot/internal/domain/port"
)

// MemeFileName имя файла при скачивании мема.
const MemeFileName = "my-meme.jpg"

// Controller управляет загрузкой, захватом с камеры и показом результата.
// Одновременно видна одна панель, и в полёте не больше одного запроса.
type Controller struct {
	view       port.View
	analyzer   port.Analyzer
	camera     port.Camera
	downloader port.Downloader
	log        zerolog.Logger

	mu         sync.Mutex
	panel      entity.Panel
	session    port.CameraSession
	pending    *entity.ImagePayload
	memeURL    string
	cancel     context.CancelFunc
	generation uint64
}

// NewController создаёт контроллер и отрисовывает начальную панель загрузки.
// camera и downloader могут быть nil.
func NewController(view port.View, analyzer port.Analyzer, camera port.Camera, downloader port.Downloader, logger zerolog.Logger) *Controller {
	c := &Controller{
		view:       view,
		analyzer:   analyzer,
		camera:     camera,
		downloader: downloader,
		log:        logger,
		panel:      entity.PanelUpload,
	}
	c.view.Render(entity.ViewState{Panel: entity.PanelUpload})
	return c
}

// Panel возвращает текущую панель.
func (c *Controller) Panel() entity.Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// MemeURL возвращает ссылку на мем из последнего успешного анализа.
func (c *Controller) MemeURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memeURL
}

// SelectFile проверяет выбранный файл и отправляет его на анализ.
func (c *Controller) SelectFile(ctx context.Context, payload entity.ImagePayload) error {
	if c.Panel() == entity.PanelLoading {
		return entity.ErrBusy
	}

	if err := payload.Validate(); err != nil {
		c.log.Info().
			Str("file", payload.Name).
			Str("media_type", payload.MediaType).
			Int64("size", payload.Size).
			Err(err).
			Msg("file rejected")

		c.mu.Lock()
		c.showErrorLocked(err)
		c.mu.Unlock()
		return err
	}

	return c.Submit(ctx, payload)
}

// OpenCamera запрашивает доступ к камере и показывает панель камеры.
func (c *Controller) OpenCamera(ctx context.Context) error {
	c.mu.Lock()
	if c.panel == entity.PanelLoading {
		c.mu.Unlock()
		return entity.ErrBusy
	}
	if c.session != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if c.camera == nil {
		err := entity.NewUserError(entity.ErrCameraUnavailable, entity.MsgCameraUnavailable, errors.New("no camera configured"))
		c.mu.Lock()
		c.showErrorLocked(err)
		c.mu.Unlock()
		return err
	}

	session, err := c.camera.Open(ctx, port.DefaultCameraConstraints)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Msg("camera open failed")
		uerr := entity.NewUserError(entity.ErrCameraUnavailable, entity.MsgCameraUnavailable, err)
		c.showErrorLocked(uerr)
		return uerr
	}

	// Пока ждали разрешения, могли начать загрузку или открыть другую сессию.
	if c.panel == entity.PanelLoading || c.session != nil {
		session.Stop()
		return entity.ErrBusy
	}

	c.session = session
	c.setPanelLocked(entity.ViewState{Panel: entity.PanelCamera})
	c.log.Debug().Msg("camera opened")
	return nil
}

// CapturePhoto снимает текущий кадр, закрывает камеру и отправляет снимок на анализ.
func (c *Controller) CapturePhoto(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	if session == nil {
		err := entity.NewUserError(entity.ErrCameraUnavailable, entity.MsgCameraUnavailable, errors.New("camera is not open"))
		c.showErrorLocked(err)
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	// Чтение кадра блокирующее, поэтому идёт без блокировки.
	frame, err := session.Frame()

	c.mu.Lock()
	// Пока читали кадр, камеру могли закрыть через Reset или CloseCamera.
	if c.session != session {
		c.mu.Unlock()
		return entity.ErrCancelled
	}
	if err != nil {
		c.log.Error().Err(err).Msg("camera frame failed")
		uerr := entity.NewUserError(entity.ErrCameraUnavailable, entity.MsgCameraUnavailable, err)
		c.showErrorLocked(uerr)
		c.mu.Unlock()
		return uerr
	}
	c.closeCameraLocked()
	c.mu.Unlock()

	payload, err := EncodeCapture(frame)
	if err != nil {
		c.log.Error().Err(err).Msg("encode capture failed")
		uerr := entity.NewUserError(entity.ErrCameraUnavailable, entity.MsgCameraUnavailable, err)
		c.mu.Lock()
		c.showErrorLocked(uerr)
		c.mu.Unlock()
		return uerr
	}

	return c.Submit(ctx, payload)
}

// CloseCamera останавливает камеру и возвращает панель загрузки.
// Без активной сессии ничего не делает.
func (c *Controller) CloseCamera() {
	c.mu.Lock()
	defer c.mu.Unlock()

	hadSession := c.closeCameraLocked()
	if hadSession || c.panel == entity.PanelCamera {
		c.setPanelLocked(entity.ViewState{Panel: entity.PanelUpload})
	}
}

// Submit отправляет изображение на анализ и показывает результат или ошибку.
// Второй запрос, пока первый в полёте, отклоняется с ErrBusy.
func (c *Controller) Submit(ctx context.Context, payload entity.ImagePayload) error {
	c.mu.Lock()
	if c.panel == entity.PanelLoading {
		c.mu.Unlock()
		return entity.ErrBusy
	}

	c.closeCameraLocked()
	c.generation++
	gen := c.generation
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.pending = &payload
	c.setPanelLocked(entity.ViewState{Panel: entity.PanelLoading})
	c.mu.Unlock()

	logger := c.log.With().
		Str("request_id", uuid.NewString()).
		Str("file", payload.Name).
		Str("media_type", payload.MediaType).
		Int64("size", payload.Size).
		Logger()
	logger.Info().Msg("analysis started")

	result, err := c.analyzer.Analyze(reqCtx, payload)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		logger.Info().Msg("stale analysis response dropped")
		return entity.ErrCancelled
	}
	c.cancel = nil
	c.pending = nil

	if err != nil {
		if !errors.Is(err, entity.ErrUploadFailed) {
			err = entity.NewUserError(entity.ErrUploadFailed, entity.MsgUploadFailed, err)
		}
		logger.Warn().Err(err).Msg("analysis failed")
		c.showErrorLocked(err)
		return err
	}

	logger.Info().
		Str("emotion", result.Emotion).
		Float64("confidence", result.Confidence).
		Int("face_count", result.FaceCount).
		Msg("analysis finished")

	c.memeURL = result.MemeImage
	c.setPanelLocked(entity.ViewState{
		Panel:  entity.PanelResults,
		Result: result,
		Scores: result.EmotionScores.Sorted(),
	})
	return nil
}

// Reset возвращает начальную панель загрузки.
// Запрос в полёте отменяется, его ответ будет отброшен.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.closeCameraLocked()
	c.setPanelLocked(entity.ViewState{Panel: entity.PanelUpload})
}

// DownloadCurrentMeme отдаёт мем из последнего результата как my-meme.jpg.
// Если мема ещё нет, ничего не делает.
func (c *Controller) DownloadCurrentMeme(ctx context.Context) error {
	url := c.MemeURL()
	if url == "" || c.downloader == nil {
		return nil
	}

	if err := c.downloader.Download(ctx, url, MemeFileName); err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("meme download failed")
		return err
	}
	return nil
}

// Close освобождает камеру и отменяет запрос в полёте.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.closeCameraLocked()
}

func (c *Controller) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.pending = nil
}

// closeCameraLocked останавливает сессию, если она есть.
func (c *Controller) closeCameraLocked() bool {
	if c.session == nil {
		return false
	}
	c.session.Stop()
	c.session = nil
	return true
}

func (c *Controller) showErrorLocked(err error) {
	c.closeCameraLocked()
	c.setPanelLocked(entity.ViewState{
		Panel:   entity.PanelError,
		Message: entity.UserMessage(err),
	})
}

func (c *Controller) setPanelLocked(state entity.ViewState) {
	c.panel = state.Panel
	c.view.Render(state)
}
