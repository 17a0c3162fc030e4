package source

import (
	"context"
	"maps"

	"podrank/internal/models"
)

// DemoStaticName is the name of the built-in demo source.
const DemoStaticName = "demo_static"

// StaticSource returns a fixed list of records without touching the network.
type StaticSource struct {
	name    string
	records []models.RawRecord
}

// NewStaticSource creates a source that always yields records.
func NewStaticSource(name string, records []models.RawRecord) *StaticSource {
	return &StaticSource{name: name, records: records}
}

// Name returns the registry name.
func (s *StaticSource) Name() string {
	return s.name
}

// Fetch returns a copy of the configured records.
func (s *StaticSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.RawRecord, len(s.records))
	for i, rec := range s.records {
		out[i] = maps.Clone(rec)
	}

	return out, nil
}

// DemoRecords returns the demo ranking.
func DemoRecords() []models.RawRecord {
	return []models.RawRecord{
		{"title": "忽左忽右", "url": "https://www.xiaoyuzhoufm.com/podcast/5e280fa0418a84a0461f9b33", "source": "小宇宙", "score": 98, "tags": []any{"历史", "文化"}},
		{"title": "得意忘形", "url": "https://www.xiaoyuzhoufm.com/podcast/5e4515bd418a84a0461f7a88", "source": "小宇宙", "score": 95, "tags": []any{"个人成长"}},
		{"title": "声东击西", "url": "https://www.xiaoyuzhoufm.com/podcast/5e280fad418a84a0461faa98", "source": "小宇宙", "score": 93, "tags": []any{"科技", "文化"}},
		{"title": "随机波动 StochasticVolatility", "url": "https://www.xiaoyuzhoufm.com/podcast/5f4f9a5f1b4bb8b4dbf1dbb0", "score": 90, "tags": []any{"女性", "文化"}},
		{"title": "  日谈公园  ", "url": " https://www.ximalaya.com/album/11796140 ", "source": "喜马拉雅"},
	}
}
