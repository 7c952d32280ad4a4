package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/log"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	c := WithValue(Background(), "requestID", "abc")
	ts.Equal("abc", c.Value("requestID"))
}

func (ts *testsuite) TestWithValues() {
	c := WithValues(Background(), map[string]interface{}{
		"a": "b",
		"c": "d",
	})
	ts.Equal("b", c.Value("a"))
	ts.Equal("d", c.Value("c"))
}

func (ts *testsuite) TestWithFieldsKeepsValues() {
	parent := WithValue(Background(), "requestID", "abc")
	c := WithFields(parent, log.Fields{"listingId": 1})
	ts.Equal("abc", c.Value("requestID"))
}

func (ts *testsuite) TestFromKeepsDeadline() {
	parent := Background()
	inner, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	c := From(parent, inner)
	_, ok := c.Deadline()
	ts.True(ok)
}

func (ts *testsuite) TestWithCancel() {
	c, cancel := WithCancel(Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		ts.Fail("context not cancelled")
	}
	ts.Equal(context.Canceled, c.Err())
}

func (ts *testsuite) TestTimeout() {
	c, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()
	<-c.Done()
	ts.Equal("context deadline exceeded", c.Err().Error())
}
