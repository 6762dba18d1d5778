// SPDX-License-Identifier: MIT

package lumem_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/sparselu/lumem"
)

// GlobalLUSuite runs the model-independent contract against one model.
type GlobalLUSuite struct {
	suite.Suite
	newManager func() *lumem.Manager
}

func (s *GlobalLUSuite) TestRoundTrip() {
	g, err := s.newManager().Init(4, 4, 4, 1)
	s.Require().NoError(err)
	s.Equal(4, g.Size(lumem.LUSup))
	s.Equal(4, g.Size(lumem.LSub))
	for i := range g.LUSup {
		g.LUSup[i] = float64(i + 1)
	}

	s.Require().NoError(g.Expand(lumem.LUSup, 0, 10))
	s.Equal(13, g.Size(lumem.LUSup))
	s.Equal(3, g.Expansions())
	s.Equal([]float64{1, 2, 3, 4}, g.LUSup[:4])

	g.Truncate(lumem.LUSup, 4)
	s.Equal([]float64{1, 2, 3, 4}, g.LUSup)
	s.Equal(13, g.Size(lumem.LUSup))
}

func (s *GlobalLUSuite) TestUColCarriesUSub() {
	g, err := s.newManager().Init(4, 4, 4, 1)
	s.Require().NoError(err)
	copy(g.USub, []int{3, 1, 2, 0})

	s.Require().NoError(g.Expand(lumem.UCol, 1, 4))
	s.Equal(6, g.Size(lumem.UCol))
	s.Equal(6, g.Size(lumem.USub))
	s.Len(g.USub, 6)
	s.Equal([]int{3, 1, 2, 0}, g.USub[:4])
}

func (s *GlobalLUSuite) TestWorkArraysAreZeroed() {
	g, err := s.newManager().Init(3, 3, 3, 2)
	s.Require().NoError(err)
	iw, err := g.AllocInts(6)
	s.Require().NoError(err)
	fw, err := g.AllocFloats(3)
	s.Require().NoError(err)
	s.Equal(make([]int, 6), iw)
	s.Equal(make([]float64, 3), fw)
	g.FreeWork()
}

func (s *GlobalLUSuite) TestBadArguments() {
	m := s.newManager()
	_, err := m.Init(-1, 2, 2, 1)
	s.ErrorIs(err, lumem.ErrBadSize)
	_, err = m.Init(2, 2, 2, 0)
	s.ErrorIs(err, lumem.ErrBadSize)

	g, err := m.Init(2, 2, 2, 1)
	s.Require().NoError(err)
	s.ErrorIs(g.Expand(lumem.Index, 0, 5), lumem.ErrBadSize)
}

func TestGlobalLU_System(t *testing.T) {
	suite.Run(t, &GlobalLUSuite{newManager: func() *lumem.Manager { return lumem.NewManager() }})
}

func TestGlobalLU_Fixed(t *testing.T) {
	suite.Run(t, &GlobalLUSuite{newManager: func() *lumem.Manager {
		return lumem.NewWorkspace(make([]float64, 64), make([]int, 96))
	}})
}

func TestFixed_ExpansionShiftsLaterArrays(t *testing.T) {
	m := lumem.NewWorkspace(make([]float64, 100), make([]int, 100))
	require.Equal(t, lumem.Fixed, m.Model())
	g, err := m.Init(4, 4, 4, 1)
	require.NoError(t, err)

	copy(g.UCol, []float64{7, 8, 9, 10})
	copy(g.USub, []int{1, 2, 3, 4})
	copy(g.XSup, []int{0, 2, 4, 4, 4})
	copy(g.LSub, []int{0, 1, 2, 3})

	require.NoError(t, g.Expand(lumem.LUSup, 2, 4))
	assert.Equal(t, 6, g.Size(lumem.LUSup))
	assert.Equal(t, []float64{7, 8, 9, 10}, g.UCol)

	require.NoError(t, g.Expand(lumem.LSub, 2, 4))
	assert.Equal(t, []int{0, 1, 2, 3}, g.LSub[:4])
	assert.Equal(t, []int{1, 2, 3, 4}, g.USub)
	assert.Equal(t, []int{0, 2, 4, 4, 4}, g.XSup)
	assert.Equal(t, (6+4)*lumem.FloatBytes+(25+6+4)*lumem.IntBytes, m.Live())
}

func TestFixed_CompressReleasesSlack(t *testing.T) {
	m := lumem.NewWorkspace(make([]float64, 20), make([]int, 40))
	g, err := m.Init(2, 2, 4, 1)
	require.NoError(t, err)
	copy(g.LUSup, []float64{1, 2, 3, 4})
	copy(g.UCol, []float64{5, 6, 7, 8})
	before := m.Live()

	g.Truncate(lumem.LUSup, 2)
	g.Truncate(lumem.UCol, 3)
	g.Compress()
	assert.Equal(t, []float64{1, 2}, g.LUSup)
	assert.Equal(t, []float64{5, 6, 7}, g.UCol)
	assert.Equal(t, before-3*lumem.FloatBytes, m.Live())
}

func TestFixed_OutOfMemory(t *testing.T) {
	m := lumem.NewWorkspace(make([]float64, 10), make([]int, 64))
	g, err := m.Init(4, 4, 4, 1)
	require.NoError(t, err)
	require.NoError(t, g.Expand(lumem.LUSup, 1, 4))
	assert.Equal(t, 6, g.Size(lumem.LUSup))

	err = g.Expand(lumem.LUSup, 3, 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, lumem.ErrOutOfMemory)
	var me *lumem.MemoryError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, lumem.LUSup, me.Type)
	assert.Equal(t, 3, me.Col)
	assert.Equal(t, 3*lumem.FloatBytes, me.Needed)
	assert.Equal(t, 6, g.Size(lumem.LUSup), "failed expansion leaves the array in place")
}

func TestFixed_IndexArraysDoNotFit(t *testing.T) {
	m := lumem.NewWorkspace(make([]float64, 10), make([]int, 10))
	_, err := m.Init(4, 4, 1, 1)
	var me *lumem.MemoryError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, lumem.Index, me.Type)
	assert.Equal(t, -1, me.Col)
	assert.Contains(t, me.Error(), "index arrays")
}

func TestFixed_EstimateFitsExactly(t *testing.T) {
	floats, ints := lumem.Estimate(4, 4, 1, 6, 2)
	assert.Equal(t, 10, floats)
	assert.Equal(t, 25+4+4+6, ints)

	m := lumem.NewWorkspace(make([]float64, floats), make([]int, ints))
	g, err := m.Init(4, 4, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Size(lumem.LUSup))
	_, err = g.AllocInts(6)
	require.NoError(t, err)
	_, err = g.AllocFloats(2)
	require.NoError(t, err)
	_, err = g.AllocFloats(1)
	assert.ErrorIs(t, err, lumem.ErrOutOfMemory)
}

func TestSystem_InitHalvesUnderLimit(t *testing.T) {
	// index arrays 5·5 ints, factors at fill 4: 16, 16, 4, 16.
	m := lumem.NewManager(lumem.WithLimit(25*lumem.IntBytes + 13*lumem.FloatBytes))
	g, err := m.Init(4, 4, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Size(lumem.LUSup))
	assert.Equal(t, 4, g.Size(lumem.UCol))
	assert.Equal(t, 1, g.Size(lumem.LSub))
	assert.Equal(t, 4, g.Size(lumem.USub))

	u := g.Usage()
	assert.Equal(t, 4*lumem.FloatBytes+1*lumem.IntBytes+20*lumem.IntBytes, u.LBytes)
	assert.Equal(t, 4*lumem.FloatBytes+4*lumem.IntBytes+5*lumem.IntBytes, u.UBytes)
	assert.Equal(t, 25*lumem.IntBytes+8*lumem.FloatBytes+5*lumem.IntBytes, u.TotalBytes)
	assert.Zero(t, u.Expansions)
}

func TestSystem_InitFailsBelowInputSize(t *testing.T) {
	m := lumem.NewManager(lumem.WithLimit(25*lumem.IntBytes + 8*lumem.FloatBytes))
	_, err := m.Init(4, 4, 4, 4)
	require.ErrorIs(t, err, lumem.ErrOutOfMemory)
	var me *lumem.MemoryError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, -1, me.Col)
	assert.Equal(t, (2+2)*lumem.FloatBytes+(0+2)*lumem.IntBytes, me.Needed)
}

func TestSystem_ExpansionFailure(t *testing.T) {
	base := 25*lumem.IntBytes + 8*lumem.FloatBytes + 8*lumem.IntBytes
	m := lumem.NewManager(lumem.WithLimit(base + 2))
	g, err := m.Init(4, 4, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, base, m.Live())

	err = g.Expand(lumem.LSub, 7, 4)
	var me *lumem.MemoryError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, lumem.LSub, me.Type)
	assert.Equal(t, 7, me.Col)
	assert.Equal(t, 2*lumem.IntBytes, me.Needed)
	assert.Equal(t, base, m.Live())

	g.Release()
	assert.Zero(t, m.Live())
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { lumem.WithLimit(-1) })
	assert.Panics(t, func() { lumem.WithWorkspace(nil, nil) })
	assert.Panics(t, func() { lumem.WithLogger(nil) })
	assert.Equal(t, "system", lumem.NewManager().Model().String())
	assert.Equal(t, "usub", lumem.USub.String())
}
