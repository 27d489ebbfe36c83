package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"sgf_studio/internal/bootstrap"
	"sgf_studio/internal/domain/record"
	errs "sgf_studio/internal/errors"
)

const (
	recordsCollection = "records"
	recordKeyPrefix   = "sgf:"
)

type RecordRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewRecordRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *RecordRepository {
	return &RecordRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (r *RecordRepository) GenerateRecordKey(ctx context.Context) string {
	return uuid.New().String()
}

func (r *RecordRepository) SaveRecordText(ctx context.Context, key string, sgfText string) error {
	if err := r.redis.Set(ctx, recordKeyPrefix+key, sgfText, r.cfg.RecordTTL).Err(); err != nil {
		r.log.Errorf("failed to save record %s to redis: %v", key, err)
		return fmt.Errorf("save record %s: %w", key, err)
	}
	return nil
}

func (r *RecordRepository) LoadRecordText(ctx context.Context, key string) (string, error) {
	text, err := r.redis.Get(ctx, recordKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrRecordNotFound
	}
	if err != nil {
		r.log.Errorf("failed to load record %s from redis: %v", key, err)
		return "", fmt.Errorf("load record %s: %w", key, err)
	}
	return text, nil
}

func (r *RecordRepository) PutRecordSummary(ctx context.Context, summary record.Summary) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(recordsCollection)
	filter := bson.M{"key": summary.Key}
	update := bson.M{"$set": summary}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		r.log.Errorf("failed to upsert record summary %s: %v", summary.Key, err)
		return fmt.Errorf("put summary %s: %w", summary.Key, err)
	}
	return nil
}

func (r *RecordRepository) GetRecordSummary(ctx context.Context, key string) (record.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var summary record.Summary
	err := r.mongo.Collection(recordsCollection).FindOne(ctx, bson.M{"key": key}).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return summary, errs.ErrRecordNotFound
	}
	if err != nil {
		r.log.Error(err)
		return summary, err
	}
	return summary, nil
}

// SearchRecordsByPlayer pages through summaries whose black or white player
// name contains name (case-insensitive). An empty name lists everything.
func (r *RecordRepository) SearchRecordsByPlayer(ctx context.Context, name string, pageNum int) (*record.SearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := r.cfg.PageLimitRecords
	if limit <= 0 {
		limit = 20
	}
	if pageNum < 1 {
		pageNum = 1
	}

	filter := bson.M{}
	if name != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
		filter = bson.M{"$or": []bson.M{
			{"player_black": pattern},
			{"player_white": pattern},
		}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64((pageNum - 1) * limit)).
		SetLimit(int64(limit + 1))

	cursor, err := r.mongo.Collection(recordsCollection).Find(ctx, filter, opts)
	if err != nil {
		r.log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []record.Summary
	if err = cursor.All(ctx, &summaries); err != nil {
		r.log.Error(err)
		return nil, err
	}

	resp := &record.SearchResponse{Page: pageNum, Records: summaries}
	if len(summaries) > limit {
		resp.Records = summaries[:limit]
		resp.HasMore = true
	}
	return resp, nil
}
