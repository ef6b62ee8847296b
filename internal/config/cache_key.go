package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ResultsChannel returns the Redis PubSub channel completed sessions are published on
func (r *CacheKeyStruct) ResultsChannel() string {
	return "quiz:results"
}

var CacheKey = NewCacheKeyStruct()
