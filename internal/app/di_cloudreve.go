package app

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	cloudreveService "github.com/ablecats/filestream/internal/cloudreve/service"
	cloudreveUseCase "github.com/ablecats/filestream/internal/cloudreve/usecase"
)

// cloudreveComponents holds the remote storage area of the container.
type cloudreveComponents struct {
	client          *cloudreveService.Client
	credentialStore *cloudreveService.CredentialStore
	downloadUseCase cloudreveUseCase.DownloadUseCase

	clientInit          sync.Once
	credentialStoreInit sync.Once
	downloadUseCaseInit sync.Once
}

// ServiceClient returns the JSON client for the remote storage service.
func (c *Container) ServiceClient() *cloudreveService.Client {
	c.cloudreve.clientInit.Do(func() {
		c.cloudreve.client = cloudreveService.NewClient(c.config.CloudreveTimeout, c.Logger())
	})
	return c.cloudreve.client
}

// CredentialStore returns the credential store for the remote storage service.
// The account password is resolved on first access, decrypting through the
// configured KMS key when an encrypted form is set.
func (c *Container) CredentialStore(ctx context.Context) (*cloudreveService.CredentialStore, error) {
	var err error
	c.cloudreve.credentialStoreInit.Do(func() {
		var password string
		password, err = cloudreveService.ResolvePassword(ctx, c.config)
		if err != nil {
			c.initErrors["credentialStore"] = err
			return
		}
		c.cloudreve.credentialStore = cloudreveService.NewCredentialStore(
			c.ServiceClient(),
			c.config,
			password,
			c.Logger(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialStore"]; exists {
		return nil, storedErr
	}
	return c.cloudreve.credentialStore, nil
}

// DownloadUseCase returns the remote-download use case, instrumented with
// metrics when enabled.
func (c *Container) DownloadUseCase(ctx context.Context) (cloudreveUseCase.DownloadUseCase, error) {
	var err error
	c.cloudreve.downloadUseCaseInit.Do(func() {
		c.cloudreve.downloadUseCase, err = c.initDownloadUseCase(ctx)
		if err != nil {
			c.initErrors["downloadUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["downloadUseCase"]; exists {
		return nil, storedErr
	}
	return c.cloudreve.downloadUseCase, nil
}

func (c *Container) initDownloadUseCase(ctx context.Context) (cloudreveUseCase.DownloadUseCase, error) {
	creds, err := c.CredentialStore(ctx)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Limit(c.config.SubmitRatePerSec), c.config.SubmitBurst)
	useCase := cloudreveUseCase.NewDownloadUseCase(
		c.config,
		c.ServiceClient(),
		creds,
		limiter,
		c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}
	return cloudreveUseCase.NewDownloadUseCaseWithMetrics(useCase, businessMetrics), nil
}
