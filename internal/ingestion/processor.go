package ingestion

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
	telemetryUsecase "github.com/ecoduino/greenhouse-backend/internal/usecase/telemetry"
)

const ingestTimeout = 10 * time.Second

// Processor funnels MQTT telemetry into the same use case the HTTP ingest
// endpoint runs, so both paths share validation and the transactional append.
type Processor struct {
	service *telemetryUsecase.Service

	messages chan *TelemetryMessage
	workers  int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProcessor creates a new telemetry processor.
func NewProcessor(service *telemetryUsecase.Service, workers, bufferSize int) *Processor {
	if workers <= 0 {
		workers = 4
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		service:  service,
		messages: make(chan *TelemetryMessage, bufferSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the worker pool.
func (p *Processor) Start() {
	logger.Info("Starting telemetry processor",
		zap.Int("workers", p.workers),
		zap.Int("buffer_size", cap(p.messages)),
	)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop drains in-flight messages and waits for the workers.
func (p *Processor) Stop() {
	p.cancel()
	p.wg.Wait()
}

// Enqueue hands a message to the worker pool without blocking the MQTT
// callback. Messages are dropped with a warning when the buffer is full.
func (p *Processor) Enqueue(msg *TelemetryMessage) {
	select {
	case p.messages <- msg:
	default:
		logger.Warn("Telemetry buffer full, dropping message")
	}
}

func (p *Processor) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case msg := <-p.messages:
			p.process(msg)
		}
	}
}

func (p *Processor) process(msg *TelemetryMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	_, err := p.service.Ingest(ctx, &telemetryUsecase.IngestTelemetryRequest{
		Token:       msg.Token,
		TempAmbient: msg.TempAmbient,
		HumAmbient:  msg.HumAmbient,
		HumSoil:     msg.HumSoil,
	})
	if err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotAuthorized) {
			logger.Warn("Telemetry from unknown device token dropped")
			return
		}
		logger.Error("Failed to ingest MQTT telemetry", zap.Error(err))
	}
}
