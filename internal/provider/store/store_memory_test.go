package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	contractSuite
}

func TestInMemoryStoreSuite(t *testing.T) {
	s := new(InMemoryStoreSuite)
	s.newStore = func() providerStore { return NewInMemoryStore() }
	suite.Run(t, s)
}

func (s *InMemoryStoreSuite) TestConcurrentCreates() {
	st := NewInMemoryStore()
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = st.Create(ctx, testProvider(fmt.Sprintf("prov-%d", idx), "owner-a", int64(idx+1)))
		}(i)
	}
	wg.Wait()

	s.Equal(goroutines, st.Count())
	_, err := st.FindIDByPrincipal(ctx, "owner-a")
	s.Require().NoError(err)
}
