package app

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"

	"github.com/allisson/ephemeral/internal/config"
	ephemeralHTTP "github.com/allisson/ephemeral/internal/ephemeral/http"
	ephemeralRepository "github.com/allisson/ephemeral/internal/ephemeral/repository"
	ephemeralService "github.com/allisson/ephemeral/internal/ephemeral/service"
	ephemeralUseCase "github.com/allisson/ephemeral/internal/ephemeral/usecase"
	"github.com/allisson/ephemeral/internal/http"
)

// BoxEngine returns the curve25519 box engine.
func (c *Container) BoxEngine() ephemeralService.BoxEngine {
	c.boxEngineInit.Do(func() {
		c.boxEngine = ephemeralService.NewBoxEngine()
	})
	return c.boxEngine
}

// KMSService returns the KMS service.
func (c *Container) KMSService() ephemeralService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = ephemeralService.NewKMSService()
	})
	return c.kmsService
}

// KeySealer returns the at-rest sealer for secret halves: KMS backed when
// KEYSTORE_KMS_KEY_URI is set, pass-through otherwise.
func (c *Container) KeySealer() (ephemeralService.KeySealer, error) {
	var err error
	c.keySealerInit.Do(func() {
		c.keySealer, err = c.initKeySealer()
		if err != nil {
			c.initErrors["keySealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySealer"]; exists {
		return nil, storedErr
	}
	return c.keySealer, nil
}

// KeypairRepository returns the repository for the configured keystore driver.
func (c *Container) KeypairRepository() (ephemeralUseCase.KeypairRepository, error) {
	var err error
	c.keypairRepositoryInit.Do(func() {
		c.keypairRepository, err = c.initKeypairRepository()
		if err != nil {
			c.initErrors["keypairRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keypairRepository"]; exists {
		return nil, storedErr
	}
	return c.keypairRepository, nil
}

// Keystore returns the keystore.
func (c *Container) Keystore() (ephemeralUseCase.Keystore, error) {
	var err error
	c.keystoreInit.Do(func() {
		c.keystore, err = c.initKeystore()
		if err != nil {
			c.initErrors["keystore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keystore"]; exists {
		return nil, storedErr
	}
	return c.keystore, nil
}

// EphemeralUseCase returns the ephemeral use case, wrapped with metrics when enabled.
func (c *Container) EphemeralUseCase() (ephemeralUseCase.EphemeralUseCase, error) {
	var err error
	c.ephemeralUseCaseInit.Do(func() {
		c.ephemeralUseCase, err = c.initEphemeralUseCase()
		if err != nil {
			c.initErrors["ephemeralUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ephemeralUseCase"]; exists {
		return nil, storedErr
	}
	return c.ephemeralUseCase, nil
}

// EphemeralHandler returns the HTTP handler for the ephemeral routes.
func (c *Container) EphemeralHandler() (*ephemeralHTTP.EphemeralHandler, error) {
	var err error
	c.ephemeralHandlerInit.Do(func() {
		c.ephemeralHandler, err = c.initEphemeralHandler()
		if err != nil {
			c.initErrors["ephemeralHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ephemeralHandler"]; exists {
		return nil, storedErr
	}
	return c.ephemeralHandler, nil
}

// ReadinessCheck returns a check that pings the configured keystore backend.
func (c *Container) ReadinessCheck() (http.ReadinessCheck, error) {
	switch c.config.KeystoreDriver {
	case config.KeystoreDriverPostgres, config.KeystoreDriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, err
		}
		return db.PingContext, nil
	case config.KeystoreDriverRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}, nil
	default:
		bucket, err := c.Bucket()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			ok, err := bucket.IsAccessible(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("keystore bucket is not accessible")
			}
			return nil
		}, nil
	}
}

// initBucket opens the keystore bucket. The file driver creates
// <KEYSTORE_PATH>/ephemeral-keys if missing.
func (c *Container) initBucket() (*blob.Bucket, error) {
	switch c.config.KeystoreDriver {
	case config.KeystoreDriverMemory:
		return memblob.OpenBucket(nil), nil
	case config.KeystoreDriverFile:
		bucket, err := fileblob.OpenBucket(c.config.KeystoreDir(), &fileblob.Options{CreateDir: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open keystore directory %s: %w", c.config.KeystoreDir(), err)
		}
		return bucket, nil
	default:
		return nil, fmt.Errorf("keystore driver %q does not use a bucket", c.config.KeystoreDriver)
	}
}

func (c *Container) initKeySealer() (ephemeralService.KeySealer, error) {
	sealer, err := c.KMSService().OpenKeySealer(context.Background(), c.config.KeystoreKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore KMS key: %w", err)
	}
	return sealer, nil
}

func (c *Container) initKeypairRepository() (ephemeralUseCase.KeypairRepository, error) {
	switch c.config.KeystoreDriver {
	case config.KeystoreDriverFile, config.KeystoreDriverMemory:
		bucket, err := c.Bucket()
		if err != nil {
			return nil, fmt.Errorf("failed to get bucket for keypair repository: %w", err)
		}
		return ephemeralRepository.NewBlobKeypairRepository(bucket), nil
	case config.KeystoreDriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for keypair repository: %w", err)
		}
		return ephemeralRepository.NewPostgreSQLKeypairRepository(db), nil
	case config.KeystoreDriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for keypair repository: %w", err)
		}
		return ephemeralRepository.NewMySQLKeypairRepository(db), nil
	case config.KeystoreDriverRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for keypair repository: %w", err)
		}
		return ephemeralRepository.NewRedisKeypairRepository(client), nil
	default:
		return nil, fmt.Errorf("unsupported keystore driver: %s", c.config.KeystoreDriver)
	}
}

func (c *Container) initKeystore() (ephemeralUseCase.Keystore, error) {
	repo, err := c.KeypairRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get keypair repository for keystore: %w", err)
	}

	sealer, err := c.KeySealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get key sealer for keystore: %w", err)
	}

	return ephemeralUseCase.NewKeystore(repo, c.BoxEngine(), sealer), nil
}

func (c *Container) initEphemeralUseCase() (ephemeralUseCase.EphemeralUseCase, error) {
	keystore, err := c.Keystore()
	if err != nil {
		return nil, fmt.Errorf("failed to get keystore for ephemeral use case: %w", err)
	}

	useCase := ephemeralUseCase.NewEphemeralUseCase(keystore, c.BoxEngine())

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for ephemeral use case: %w", err)
	}
	return ephemeralUseCase.NewEphemeralUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initEphemeralHandler() (*ephemeralHTTP.EphemeralHandler, error) {
	useCase, err := c.EphemeralUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get ephemeral use case for handler: %w", err)
	}
	return ephemeralHTTP.NewEphemeralHandler(useCase, c.Logger()), nil
}
