package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/jitter"
	"github.com/robosite/storefront/pkg/logger"
)

const (
	// outboxChannel — канал postgres NOTIFY, в который репозиторий
	// сигналит о новых pending-событиях.
	outboxChannel = "outbox_pending"

	// outboxBatchSize — сколько событий забираем за один проход.
	outboxBatchSize = 10

	// notifyWaitTimeout — максимум ожидания NOTIFY; по таймауту
	// делаем контрольный проход, чтобы не потерять событие,
	// записанное до установки LISTEN.
	notifyWaitTimeout = 30 * time.Second

	reconnectBaseDelay = 2 * time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// OutboxWorker публикует события каталога из таблицы outbox_events в Kafka.
// Просыпается по NOTIFY от postgres и по таймауту, события берёт пачками
// со статусной блокировкой, чтобы несколько реплик не дублировали доставку.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	producer  usecase.MessageProducer
	logger    logger.Logger
	dbConnStr string

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		producer:  producer,
		logger:    logger,
		dbConnStr: dbConnStr,
		stop:      make(chan struct{}),
	}
}

// Start запускает воркер. Горутина-слушатель держит LISTEN-подключение,
// основная горутина выгребает накопившееся на старте.
func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)

	go func() {
		defer w.wg.Done()
		w.drainOnStartup(ctx)
	}()

	go func() {
		defer w.wg.Done()
		w.listen(ctx)
	}()

	w.logger.Infof("outbox worker: started")
}

// Stop останавливает воркер и дожидается завершения горутин.
func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
	w.logger.Infof("outbox worker: stopped")
}

// drainOnStartup публикует события, накопившиеся пока сервис не работал.
func (w *OutboxWorker) drainOnStartup(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		n, err := w.publishBatch(ctx)
		if err != nil {
			w.logger.Errorf(err, "outbox worker: startup drain failed")
			return
		}
		if n < outboxBatchSize {
			return
		}
	}
}

// listen держит выделенное соединение с LISTEN и будит публикацию
// на каждый NOTIFY. При обрыве переподключается с экспоненциальной
// задержкой; счётчик попыток сбрасывается после удачного коннекта.
func (w *OutboxWorker) listen(ctx context.Context) {
	attempt := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		if err := w.listenOnce(ctx); err != nil {
			if ctx.Err() != nil || w.stopped() {
				return
			}

			attempt++
			delay := jitter.ExponentialBackoff(reconnectBaseDelay, reconnectMaxDelay, attempt, jitter.DefaultJitter)
			w.logger.Warnf("outbox worker: listen connection lost, retry in %s (attempt %d): %v", delay, attempt, err)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}
			continue
		}

		attempt = 0
	}
}

// listenOnce — один жизненный цикл LISTEN-соединения: connect, LISTEN,
// цикл ожидания уведомлений. nil возвращается только при штатной остановке.
func (w *OutboxWorker) listenOnce(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err = conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
		return err
	}

	w.logger.Debugf("outbox worker: listening on %q", outboxChannel)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stop:
			return nil
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, notifyWaitTimeout)
		_, err = conn.WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			// уведомление получено
		case errors.Is(err, context.DeadlineExceeded):
			// таймаут: идём на контрольный проход
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}

		if _, err := w.publishBatch(ctx); err != nil {
			w.logger.Errorf(err, "outbox worker: batch publish failed")
		}
	}
}

// publishBatch забирает пачку pending-событий, публикует их и помечает
// обработанными. Возвращает размер пачки.
func (w *OutboxWorker) publishBatch(ctx context.Context) (int, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, outboxBatchSize)
	if err != nil {
		return 0, err
	}

	for _, ev := range events {
		if err := w.publishEvent(ctx, ev); err != nil {
			// событие остаётся в processing и будет возвращено
			// в pending по таймауту reclaim-запроса репозитория
			if isRetryableError(err) {
				w.logger.Warnf("outbox worker: transient publish error for event %s: %v", ev.EventID, err)
			} else {
				w.logger.Errorf(err, "outbox worker: publish failed for event %s", ev.EventID)
			}
			continue
		}

		if err := w.repo.MarkAsProcessed(ctx, ev.ID); err != nil {
			w.logger.Errorf(err, "outbox worker: failed to mark event %d as processed", ev.ID)
		}
	}

	return len(events), nil
}

func (w *OutboxWorker) publishEvent(ctx context.Context, ev *usecase.OutboxEvent) error {
	req := usecase.NewWriteRawMessageReq(ev.ProductID, ev.Payload)
	if err := w.producer.WriteRawMessage(ctx, req); err != nil {
		return err
	}

	w.logger.Debugf("outbox worker: published %s event %s for product %s", ev.EventType, ev.EventID, ev.ProductID)
	return nil
}

func (w *OutboxWorker) stopped() bool {
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

// isRetryableError отделяет временные сбои брокера и сети от
// ошибок, ретрай которых бессмыслен.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"no such host",
		"leader not available",
		"not enough replicas",
		"request timed out",
		"temporar",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}

	return false
}
