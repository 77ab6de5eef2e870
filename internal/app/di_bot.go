package app

import (
	"context"
	"sync"

	botService "github.com/ablecats/filestream/internal/bot/service"
	botUseCase "github.com/ablecats/filestream/internal/bot/usecase"
	linkService "github.com/ablecats/filestream/internal/link/service"
	relayService "github.com/ablecats/filestream/internal/relay/service"
)

// botComponents holds the ingestion and hand-off area of the container.
type botComponents struct {
	linkCache     *linkService.Cache
	linkExtractor *linkService.Extractor
	forwarder     *relayService.Forwarder
	useCase       botUseCase.BotUseCase

	linkCacheInit     sync.Once
	linkExtractorInit sync.Once
	forwarderInit     sync.Once
	useCaseInit       sync.Once
}

// LinkCache returns the reply-link cache.
func (c *Container) LinkCache() *linkService.Cache {
	c.bot.linkCacheInit.Do(func() {
		c.bot.linkCache = linkService.NewCache(
			c.config.LinkCacheSize,
			c.config.LinkCacheTTL,
			c.Logger(),
		)
	})
	return c.bot.linkCache
}

// LinkExtractor returns the link extraction chain.
func (c *Container) LinkExtractor() *linkService.Extractor {
	c.bot.linkExtractorInit.Do(func() {
		c.bot.linkExtractor = linkService.NewExtractor(c.LinkCache(), c.Logger())
	})
	return c.bot.linkExtractor
}

// Forwarder returns the holding-channel relay.
func (c *Container) Forwarder() (*relayService.Forwarder, error) {
	var err error
	c.bot.forwarderInit.Do(func() {
		c.bot.forwarder, err = c.initForwarder()
		if err != nil {
			c.initErrors["forwarder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["forwarder"]; exists {
		return nil, storedErr
	}
	return c.bot.forwarder, nil
}

// BotUseCase returns the inbound event handlers, instrumented with metrics
// when enabled.
func (c *Container) BotUseCase(ctx context.Context) (botUseCase.BotUseCase, error) {
	var err error
	c.bot.useCaseInit.Do(func() {
		c.bot.useCase, err = c.initBotUseCase(ctx)
		if err != nil {
			c.initErrors["botUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["botUseCase"]; exists {
		return nil, storedErr
	}
	return c.bot.useCase, nil
}

func (c *Container) initForwarder() (*relayService.Forwarder, error) {
	messenger, err := c.Messenger()
	if err != nil {
		return nil, err
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}
	return relayService.NewForwarder(
		messenger,
		c.config.HoldingChannelID,
		c.config.RelayDownloadDir,
		businessMetrics,
		c.Logger(),
	), nil
}

func (c *Container) initBotUseCase(ctx context.Context) (botUseCase.BotUseCase, error) {
	messenger, err := c.Messenger()
	if err != nil {
		return nil, err
	}
	forwarder, err := c.Forwarder()
	if err != nil {
		return nil, err
	}
	downloadUseCase, err := c.DownloadUseCase(ctx)
	if err != nil {
		return nil, err
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := botUseCase.NewBotUseCase(
		c.config,
		messenger,
		forwarder,
		c.LinkExtractor(),
		c.LinkCache(),
		downloadUseCase,
		botService.NewFileProps(),
		c.Logger(),
	)
	return botUseCase.NewBotUseCaseWithMetrics(useCase, businessMetrics), nil
}
