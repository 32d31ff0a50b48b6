package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/config"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// Package container holds process-wide singletons, set once at startup and
// read by the router modules when they build their dependencies.

var (
	cfg       *config.Config
	logger    *logrus.Logger
	pgPool    *pgxpool.Pool
	redisCli  *redis.Client
	gcsClient *storage.Client
	jwtMgr    *helpers.JWTManager
	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisCli = r }
func GetRedis() *redis.Client  { return redisCli }

func SetGCS(c *storage.Client) { gcsClient = c }
func GetGCS() *storage.Client  { return gcsClient }

func SetJWT(m *helpers.JWTManager) { jwtMgr = m }
func GetJWT() *helpers.JWTManager  { return jwtMgr }

func SetRabbit(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbit() *helpers.RabbitPublisher  { return rabbitPub }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }
