package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	now := time.Unix(1700000000, 0)

	s.Equal(`abc123`, *String(`abc123`))
	s.Equal(123, *Int(123))
	s.Equal(int32(4567), *Int32(4567))
	s.Equal(true, *Bool(true))
	s.Equal(now, *Time(now))
}

func (s *pointerSuite) TestDistinct() {
	a, b := Bool(false), Bool(false)
	*a = true
	s.False(*b)
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}
