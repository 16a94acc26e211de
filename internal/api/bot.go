package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "meme-bot/internal/application"
	"meme-bot/internal/domain/entity"
	"meme-bot/internal/domain/port"
	"meme-bot/internal/infrastructure/download"
)

const (
	msgStart = `👋 Привет! Я превращаю фото лица в мем.

📸 Отправьте мне фото, я определю эмоцию и соберу мем.

📋 Команды:
/help — справка
/download — прислать последний мем файлом
/status — текущее состояние
/reset — начать заново`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото (PNG, JPG, GIF до 16 МБ), можно файлом
2️⃣ Бот отправит его на анализ эмоций
3️⃣ Вы получите эмоцию, оценки и готовый мем

💡 Рекомендации:
• Лицо должно быть хорошо видно
• Снимайте при хорошем освещении

📋 Команды:
/download — скачать мем
/reset — начать заново`

	msgSendPhoto      = "📸 Пожалуйста, отправьте фото с лицом."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing     = "⏳ Анализирую эмоции..."
	msgBusy           = "⏳ Предыдущее фото ещё обрабатывается, подождите."
	msgNoMeme         = "🤷 Мема пока нет. Сначала отправьте фото."
	msgDownloadError  = "⚠️ Не удалось скачать мем. Попробуйте позже."
	msgReset          = "🔄 Начнём заново. Отправьте фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api          *tgbotapi.BotAPI
	sessions     *app.SessionService
	http         *http.Client
	fileEndpoint string
	log          zerolog.Logger

	// ctx отменяется при остановке и прерывает фоновые скачивания.
	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, sessions *app.SessionService, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("account", api.Self.UserName).Msg("authorized")

	return newBot(api, sessions, logger), nil
}

func newBot(api *tgbotapi.BotAPI, sessions *app.SessionService, logger zerolog.Logger) *Bot {
	ctx, stop := context.WithCancel(context.Background())
	return &Bot{
		api:          api,
		sessions:     sessions,
		http:         &http.Client{},
		fileEndpoint: tgbotapi.FileEndpoint,
		log:          logger,
		ctx:          ctx,
		stop:         stop,
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer func() {
		b.api.StopReceivingUpdates()
		b.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			// Анализ долгий, поэтому каждое сообщение обрабатывается отдельно.
			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

// Close отменяет фоновые отправки, закрывает контроллеры чатов
// и ждёт завершения обработчиков.
func (b *Bot) Close() {
	b.stop()
	b.sessions.CloseAll()
	b.wg.Wait()
}

// ViewFor реализует app.Frontend
func (b *Bot) ViewFor(chatID int64) port.View {
	return &chatView{bot: b, chatID: chatID}
}

// DownloaderFor реализует app.Frontend
func (b *Bot) DownloaderFor(chatID int64) port.Downloader {
	return &chatDownloader{bot: b, chatID: chatID}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	payload, ok := b.payloadFrom(msg)
	if !ok {
		// Текстовое сообщение (не команда)
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
		return
	}

	ctrl := b.sessions.Controller(msg.Chat.ID, b)
	err := ctrl.SelectFile(ctx, payload)
	switch {
	case errors.Is(err, entity.ErrBusy):
		b.sendMessage(msg.Chat.ID, msgBusy)
	case err != nil:
		// Ошибка уже показана пользователю через представление.
		b.log.Debug().Err(err).Int64("chat_id", msg.Chat.ID).Msg("analysis not completed")
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.sessions.Controller(chatID, b).Reset()
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "reset", "cancel":
		b.sessions.Controller(chatID, b).Reset()

	case "download":
		ctrl := b.sessions.Controller(chatID, b)
		if ctrl.MemeURL() == "" {
			b.sendMessage(chatID, msgNoMeme)
			return
		}
		if err := ctrl.DownloadCurrentMeme(ctx); err != nil {
			b.sendMessage(chatID, msgDownloadError)
		}

	case "status":
		session, err := b.sessions.Status(ctx, chatID)
		if err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("get status failed")
			return
		}
		b.sendMessage(chatID, formatStatus(session))

	case "stop":
		if err := b.sessions.End(ctx, chatID); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("end session failed")
		}

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// payloadFrom достаёт изображение из фото или документа.
// Содержимое скачивается только при отправке на анализ.
func (b *Bot) payloadFrom(msg *tgbotapi.Message) (entity.ImagePayload, bool) {
	if len(msg.Photo) > 0 {
		// Берём фото с максимальным разрешением
		photo := msg.Photo[len(msg.Photo)-1]
		return entity.ImagePayload{
			Name:      photo.FileUniqueID + ".jpg",
			MediaType: "image/jpeg",
			Size:      int64(photo.FileSize),
			Open:      b.opener(photo.FileID),
		}, true
	}

	if doc := msg.Document; doc != nil {
		return entity.ImagePayload{
			Name:      doc.FileName,
			MediaType: doc.MimeType,
			Size:      int64(doc.FileSize),
			Open:      b.opener(doc.FileID),
		}, true
	}

	return entity.ImagePayload{}, false
}

// opener возвращает функцию, открывающую файл из Telegram.
// Скачивание прерывается при отмене ctx.
func (b *Bot) opener(fileID string) func(ctx context.Context) (io.ReadCloser, error) {
	return func(ctx context.Context) (io.ReadCloser, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
		if err != nil {
			return nil, fmt.Errorf("get file: %w", err)
		}

		link := fmt.Sprintf(b.fileEndpoint, b.api.Token, file.FilePath)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := b.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download file: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
		}

		return resp.Body, nil
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}

// chatView показывает панели контроллера сообщениями в чате.
// Render вызывается под блокировкой контроллера, поэтому сообщения
// уходят в фоне, по одному и в порядке панелей.
type chatView struct {
	bot      *Bot
	chatID   int64
	rendered bool

	cancel context.CancelFunc
	done   chan struct{}
}

func (v *chatView) Render(state entity.ViewState) {
	first := !v.rendered
	v.rendered = true

	switch state.Panel {
	case entity.PanelUpload:
		// Начальная панель появляется вместе с первым фото, её не показываем.
		if !first {
			v.enqueue(v.text(msgReset))
		}

	case entity.PanelLoading:
		v.enqueue(v.text(msgProcessing))

	case entity.PanelResults:
		v.enqueue(func(ctx context.Context) {
			v.sendResults(ctx, state)
		})

	case entity.PanelError:
		v.enqueue(v.text("⚠️ " + state.Message))

	case entity.PanelCamera:
		// В чате камеры нет.
	}
}

func (v *chatView) text(text string) func(context.Context) {
	return func(context.Context) {
		v.bot.sendMessage(v.chatID, text)
	}
}

// enqueue ставит отправку после предыдущей. Новая панель отменяет
// скачивание мема для прошлой.
func (v *chatView) enqueue(send func(ctx context.Context)) {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(v.bot.ctx)
	prev := v.done
	done := make(chan struct{})
	v.cancel, v.done = cancel, done

	v.bot.wg.Add(1)
	go func() {
		defer v.bot.wg.Done()
		defer close(done)
		defer cancel()

		if prev != nil {
			<-prev
		}
		send(ctx)
	}()
}

func (v *chatView) sendResults(ctx context.Context, state entity.ViewState) {
	caption := formatResult(state)

	if state.Result.MemeImage == "" {
		v.bot.sendMessage(v.chatID, caption)
		return
	}

	data, err := download.Fetch(ctx, v.bot.http, state.Result.MemeImage)
	if ctx.Err() != nil {
		// Результат уже сменился другой панелью или бот остановлен.
		v.bot.log.Debug().Int64("chat_id", v.chatID).Msg("meme send cancelled")
		return
	}
	if err != nil {
		v.bot.log.Error().Err(err).Str("url", state.Result.MemeImage).Msg("fetch meme failed")
		v.bot.sendMessage(v.chatID, caption)
		return
	}

	photo := tgbotapi.NewPhoto(v.chatID, tgbotapi.FileBytes{Name: app.MemeFileName, Bytes: data})
	photo.Caption = caption
	if _, err := v.bot.api.Send(photo); err != nil {
		v.bot.log.Error().Err(err).Int64("chat_id", v.chatID).Msg("send meme failed")
	}
}

// chatDownloader присылает файл документом
type chatDownloader struct {
	bot    *Bot
	chatID int64
}

func (d *chatDownloader) Download(ctx context.Context, url, name string) error {
	data, err := download.Fetch(ctx, d.bot.http, url)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(d.chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := d.bot.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

var _ app.Frontend = (*Bot)(nil)
