//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/breed"
	"github.com/spycat-agency/service-mission/internal/common/config"
	"github.com/spycat-agency/service-mission/internal/common/database"
	"github.com/spycat-agency/service-mission/internal/common/kafka"
	"github.com/spycat-agency/service-mission/internal/common/middleware"
	"github.com/spycat-agency/service-mission/internal/domain/events"
	missionEvents "github.com/spycat-agency/service-mission/internal/events"
	"github.com/spycat-agency/service-mission/internal/handler"
	"github.com/spycat-agency/service-mission/internal/repository"
	"github.com/spycat-agency/service-mission/internal/schema"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// missionStack holds wired-up mission service components.
type missionStack struct {
	Router          *gin.Engine
	Consumer        *missionEvents.TargetReportConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers, creates the
// database and schema the way the service does at startup, and returns a
// connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:        pgHost,
		Port:        pgPort.Port(),
		User:        "test",
		Password:    "test",
		DBName:      "developsToday",
		AdminDBName: "postgres",
		SSLMode:     "disable",
	}

	// Poll until the server accepts connections, creating the database on the way.
	require.Eventually(t, func() bool {
		return schema.EnsureDatabaseExists(ctx, cfg, log) == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	db, err := database.Connect(cfg, log)
	require.NoError(t, err)
	require.NoError(t, schema.EnsureSchema(cfg, log))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, events.TopicMissionEvents, events.TopicTargetReports)

	cleanup := func() {
		_ = database.Close(db)
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// newBreedCatalogue serves a breed search endpoint that knows the given names.
func newBreedCatalogue(t *testing.T, names ...string) string {
	t.Helper()
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		if !known[q] {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = fmt.Fprintf(w, `[{"id":"x","name":%q}]`, q)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// setupMissionStack wires up the full mission service stack behind a router.
func setupMissionStack(t *testing.T, db *gorm.DB, brokers []string, breedURL string) *missionStack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	catRepo := repository.NewGormCatRepository(db)
	missionRepo := repository.NewGormMissionRepository(db)
	noteRepo := repository.NewGormNoteRepository(db)
	producer := kafka.NewProducer(brokers, logger)
	breeds := breed.NewClient(breedURL, "", 5*time.Second, logger)

	catSvc := application.NewCatService(catRepo, breeds, producer, logger)
	missionSvc := application.NewMissionService(missionRepo, catRepo, producer, logger)
	noteSvc := application.NewNoteService(noteRepo, logger)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	handler.RegisterRootRoute(&router.RouterGroup)
	handler.NewCatHandler(catSvc).RegisterRoutes(&router.RouterGroup)
	handler.NewMissionHandler(missionSvc).RegisterRoutes(&router.RouterGroup)
	handler.NewNoteHandler(noteSvc).RegisterRoutes(&router.RouterGroup)

	groupID := fmt.Sprintf("test-mission-%s", uuid.New().String()[:8])
	consumer := missionEvents.NewTargetReportConsumer(brokers, groupID, missionSvc, logger)

	return &missionStack{
		Router:          router,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForMissionStatus polls the missions table until the status matches.
func waitForMissionStatus(t *testing.T, db *gorm.DB, missionID int64, expectedStatus string, timeout time.Duration) repository.MissionModel {
	t.Helper()
	var result repository.MissionModel
	require.Eventually(t, func() bool {
		var model repository.MissionModel
		err := db.Where("id = ?", missionID).First(&model).Error
		if err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "mission did not transition to %s", expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
