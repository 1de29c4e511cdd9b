package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glspv/spirv"
)

func TestGood_DeclaresFragmentEntryPoint(t *testing.T) {
	m, err := spirv.Parse(Good(EntryPoint))
	require.NoError(t, err)

	_, ok := m.EntryPoint(EntryPoint, spirv.ExecutionModelFragment)
	assert.True(t, ok, "good candidate should declare %q", EntryPoint)
	assert.Empty(t, m.Bindings(), "good candidate has no resource bindings")
}

func TestBad_DeclaresOutOfRangeBinding(t *testing.T) {
	m, err := spirv.Parse(Bad(EntryPoint))
	require.NoError(t, err)

	_, ok := m.EntryPoint(EntryPoint, spirv.ExecutionModelFragment)
	assert.True(t, ok)

	bindings := m.Bindings()
	require.Len(t, bindings, 1)
	assert.Equal(t, uint32(BadBinding), bindings[0].Binding)
	assert.Equal(t, spirv.StorageClassUniform, bindings[0].StorageClass)
	assert.Equal(t, "params", bindings[0].Name)
}

func TestBuild_ComputeWithSpecConstants(t *testing.T) {
	data := Build(Options{EntryPoint: "cs", Model: spirv.ExecutionModelGLCompute, SpecIDs: []uint32{3, 1}})
	m, err := spirv.Parse(data)
	require.NoError(t, err)

	ep, ok := m.EntryPoint("cs", spirv.ExecutionModelGLCompute)
	require.True(t, ok)
	assert.Empty(t, ep.Interfaces, "compute entry point has no interface variables")

	specs := m.SpecConstants()
	require.Len(t, specs, 2)
	assert.Equal(t, uint32(1), specs[0].SpecID)
	assert.Equal(t, uint32(3), specs[1].SpecID)
}

func TestWriteCandidates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	good, bad, err := WriteCandidates(dir, EntryPoint)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, GoodFile), good)
	assert.Equal(t, filepath.Join(dir, BadFile), bad)

	data, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, Good(EntryPoint), data)

	data, err = os.ReadFile(bad)
	require.NoError(t, err)
	assert.Equal(t, Bad(EntryPoint), data)
}

func TestBuild_Extensions(t *testing.T) {
	data := Build(Options{
		EntryPoint: EntryPoint,
		Model:      spirv.ExecutionModelFragment,
		Extensions: []string{"SPV_KHR_storage_buffer_storage_class", "SPV_KHR_16bit_storage"},
	})
	m, err := spirv.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"SPV_KHR_storage_buffer_storage_class", "SPV_KHR_16bit_storage"}, m.Extensions)

	plain, err := spirv.Parse(Good(EntryPoint))
	require.NoError(t, err)
	assert.Empty(t, plain.Extensions)
}
