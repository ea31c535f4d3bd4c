package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/handler"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
	"github.com/vasapolrittideah/animal-shelter-api/shared/database"
	"github.com/vasapolrittideah/animal-shelter-api/shared/discovery"
	"github.com/vasapolrittideah/animal-shelter-api/shared/logger"
	"github.com/vasapolrittideah/animal-shelter-api/shared/mailer"
	"github.com/vasapolrittideah/animal-shelter-api/shared/metrics"
	"github.com/vasapolrittideah/animal-shelter-api/shared/provider"
	"github.com/vasapolrittideah/animal-shelter-api/shared/storage"
	"github.com/vasapolrittideah/animal-shelter-api/shared/utilities"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	bootLogger := logger.New("shelter-api", os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	cfg := config.NewShelterAPIConfig(bootLogger)
	log := logger.New(cfg.ServiceName, cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	identityRepo := repository.NewIdentityMongoRepository(ctx, log, db)
	tokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, log, db)
	petRepo := repository.NewPetMongoRepository(ctx, log, db)
	volunteerRepo := repository.NewVolunteerMongoRepository(ctx, log, db)
	donationRepo := repository.NewDonationMongoRepository(ctx, log, db)

	validator, err := validation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	mail := mailer.NewMailer(log)

	var google usecase.GoogleTokenVerifier
	if cfg.GoogleClientID != "" {
		googleProvider, err := provider.NewGoogleOAuthProvider(ctx, cfg.GoogleClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Google OAuth provider")
		}
		google = googleProvider
	}

	var presigner usecase.ImagePresigner
	if cfg.StorageEnabled() {
		filePresigner, err := storage.NewFilePresigner(ctx, storage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			UsePathStyle:    cfg.Storage.UsePathStyle,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			PresignExpiry:   cfg.Storage.PresignExpiry,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create S3 presigner")
		}
		presigner = filePresigner
	}

	var passwordResetUsecase usecase.PasswordResetUsecase
	if cfg.PasswordResetEnabled() {
		passwordResetUsecase = usecase.NewPasswordResetUsecase(userRepo, tokenRepo, jwtAuth, mail, cfg)
	} else {
		log.Warn().Msg("PASSWORD_RESET_TOKEN_SECRET is not set, password reset routes are disabled")
	}

	router := handler.NewRouter(handler.Dependencies{
		Logger:    log,
		Config:    cfg,
		Validator: validator,
		JWTAuth:   jwtAuth,
		Metrics:   metrics.NewHTTPMetrics("shelter_api"),
		Pinger: handler.PingFunc(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		}),
		AuthUsecase:          usecase.NewAuthUsecase(userRepo, identityRepo, jwtAuth, google, cfg),
		PasswordResetUsecase: passwordResetUsecase,
		UserUsecase:          usecase.NewUserUsecase(userRepo, identityRepo),
		AdminUsecase:         usecase.NewAdminUsecase(userRepo, petRepo, volunteerRepo, donationRepo),
		PetUsecase:           usecase.NewPetUsecase(petRepo, presigner),
		VolunteerUsecase:     usecase.NewVolunteerUsecase(volunteerRepo, mail),
		DonationUsecase:      usecase.NewDonationUsecase(donationRepo, mail),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if cfg.GRPCHealthPort != 0 {
		grpcServer, healthServer, err := utilities.ServeGRPCHealth(fmt.Sprintf(":%d", cfg.GRPCHealthPort), log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start gRPC health server")
		}
		defer func() {
			healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
			grpcServer.GracefulStop()
		}()
	}

	if cfg.ConsulAddr != "" {
		deregister := registerWithConsul(cfg, log)
		defer deregister()
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("shelter API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// registerWithConsul announces the instance and returns the matching deregistration.
func registerWithConsul(cfg *config.ShelterAPIConfig, log *zerolog.Logger) func() {
	registry, err := discovery.NewConsulRegistry(cfg.ConsulAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Consul client")
	}

	serviceID := cfg.ServiceName + "-" + cfg.AdvertiseHost + "-" + strconv.Itoa(cfg.Port)
	err = registry.Register(discovery.Registration{
		ServiceID:   serviceID,
		ServiceName: cfg.ServiceName,
		Address:     cfg.AdvertiseHost,
		Port:        cfg.Port,
		Tags:        []string{"http", cfg.AppEnv},
		HealthURL:   fmt.Sprintf("http://%s:%d/health", cfg.AdvertiseHost, cfg.Port),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register with Consul")
	}
	log.Info().Str("service_id", serviceID).Msg("registered with Consul")

	return func() {
		if err := registry.Deregister(serviceID); err != nil {
			log.Error().Err(err).Msg("failed to deregister from Consul")
		}
	}
}
