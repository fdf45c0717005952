package metrics

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type metricsSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(metricsSuite))
}

func (s *metricsSuite) TestParseTag() {
	s.Nil(parseTag(nil))
	s.Equal([]string{"func:get", "cluster:main"}, parseTag([]string{"func", "get", "cluster", "main"}))
	s.Panics(func() { parseTag([]string{"odd"}) })
}

func (s *metricsSuite) TestLogBackend() {
	met := New("test", WithoutPodName())
	s.NotPanics(func() {
		met.BumpSum("calls", 1, "func", "test")
		met.BumpAvg("ratio", 0.5)
		met.BumpHistogram("bytes", 10)
		met.BumpTime("time").End()
	})
	_, ok := nextClient().(*LogClient)
	s.True(ok)
}
