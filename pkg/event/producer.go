package event

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/cloudevents/sdk-go/protocol/kafka_sarama/v2"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/rs/zerolog/log"
)

const eventSource = "urn:linkgw:source:gateway"

type Producer interface {
	SendClick(ctx context.Context, click ClickEvent) error
	SendLifecycle(ctx context.Context, notice LifecycleNotice) error
	Close()
}

// NewProducer returns a kafka-backed producer, or a log-only producer when
// no brokers are configured so callers never need to special-case it.
func NewProducer() Producer {
	conf := config.Get()
	if conf.Kafka.Bootstrap.Servers == "" {
		log.Warn().Msg("No kafka brokers configured, events will only be logged")
		return &logProducer{}
	}

	servers := strings.Split(conf.Kafka.Bootstrap.Servers, ",")
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_0_0_0

	if strings.Contains(conf.Kafka.Sasl.Protocol, "SSL") {
		saramaConfig.Net.TLS.Enable = true
	}
	if conf.Kafka.Capath != "" {
		tlsConfig, err := newTLSConfig(conf.Kafka.Capath)
		if err != nil {
			log.Error().Err(err).Msgf("Unable to load TLS config for %s cert", conf.Kafka.Capath)
			return &logProducer{}
		}
		saramaConfig.Net.TLS.Config = tlsConfig
	}
	if strings.HasPrefix(conf.Kafka.Sasl.Protocol, "SASL_") {
		saramaConfig.Net.SASL.Enable = true
		saramaConfig.Net.SASL.User = conf.Kafka.Sasl.Username
		saramaConfig.Net.SASL.Password = conf.Kafka.Sasl.Password
		saramaConfig.Net.SASL.Mechanism = sarama.SASLMechanism(conf.Kafka.Sasl.Mechanism)
	}

	clicksClient, err := newTopicClient(servers, saramaConfig, conf.Kafka.Topics.Clicks)
	if err != nil {
		log.Error().Err(err).Msg("failed to create clicks event client")
		return &logProducer{}
	}
	lifecycleClient, err := newTopicClient(servers, saramaConfig, conf.Kafka.Topics.Lifecycle)
	if err != nil {
		log.Error().Err(err).Msg("failed to create lifecycle event client")
		return &logProducer{}
	}

	return &kafkaProducer{
		clicks:    clicksClient,
		lifecycle: lifecycleClient,
	}
}

func newTopicClient(servers []string, saramaConfig *sarama.Config, topic string) (*topicClient, error) {
	protocol, err := kafka_sarama.NewSender(servers, saramaConfig, topic)
	if err != nil {
		return nil, err
	}
	client, err := cloudevents.NewClient(protocol, cloudevents.WithTimeNow(), cloudevents.WithUUIDs())
	if err != nil {
		protocol.Close(context.Background())
		return nil, err
	}
	return &topicClient{client: client, protocol: protocol}, nil
}

func newTLSConfig(caPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caCert)
	return &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

type topicClient struct {
	client   cloudevents.Client
	protocol *kafka_sarama.Sender
}

type kafkaProducer struct {
	clicks    *topicClient
	lifecycle *topicClient
}

func (p *kafkaProducer) SendClick(ctx context.Context, click ClickEvent) error {
	return p.send(ctx, p.clicks, "io.linkgw.links.click", click.Domain+"/"+click.Key, click)
}

func (p *kafkaProducer) SendLifecycle(ctx context.Context, notice LifecycleNotice) error {
	return p.send(ctx, p.lifecycle, "io.linkgw.domains."+notice.Notice, notice.Slug, notice)
}

func (p *kafkaProducer) send(ctx context.Context, tc *topicClient, eventType string, subject string, data interface{}) error {
	ctx = cloudevents.WithEncodingStructured(ctx)

	e := cloudevents.NewEvent()
	e.SetSource(eventSource)
	e.SetID(uuid.NewString())
	e.SetType(eventType)
	e.SetSubject(subject)
	e.SetTime(time.Now())
	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return err
	}

	if result := tc.client.Send(ctx, e); cloudevents.IsUndelivered(result) {
		return result
	}
	return nil
}

func (p *kafkaProducer) Close() {
	ctx := context.Background()
	if p.clicks != nil {
		_ = p.clicks.protocol.Close(ctx)
	}
	if p.lifecycle != nil {
		_ = p.lifecycle.protocol.Close(ctx)
	}
}

// logProducer is used when kafka is unconfigured, e.g. local development.
type logProducer struct{}

func (p *logProducer) SendClick(ctx context.Context, click ClickEvent) error {
	log.Debug().Str("domain", click.Domain).Str("key", click.Key).Msg("click event")
	return nil
}

func (p *logProducer) SendLifecycle(ctx context.Context, notice LifecycleNotice) error {
	log.Info().Str("slug", notice.Slug).Str("notice", notice.Notice).Msg("lifecycle event")
	return nil
}

func (p *logProducer) Close() {}
