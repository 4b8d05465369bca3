package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetName(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("team"), Value: aws.String("storage")},
		{Key: aws.String("Name"), Value: aws.String("db-data")},
	}
	assert.Equal(t, "db-data", GetName(tags))
	assert.Equal(t, "storage", GetTagValue(tags, "team"))
	assert.Empty(t, GetName(nil))
	assert.Empty(t, GetName([]types.Tag{{Key: aws.String("Name")}}))
}

func TestGetNestedString(t *testing.T) {
	data, err := ParseJSON(`{"product": {"attributes": {"volumeApiName": "gp3", "size": 8}}}`)
	require.NoError(t, err)

	name, err := GetNestedString(data, "product", "attributes", "volumeApiName")
	require.NoError(t, err)
	assert.Equal(t, "gp3", name)

	_, err = GetNestedString(data, "product", "attributes", "size")
	assert.ErrorContains(t, err, "not a string")

	_, err = GetNestedString(data, "product", "attributes", "volumeApiName", "deeper")
	assert.ErrorContains(t, err, "not a map")

	_, err = GetNestedString(data)
	assert.Error(t, err)
}

func TestGetFirstMapValue(t *testing.T) {
	v, err := GetFirstMapValue(map[string]interface{}{"only": 1.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = GetFirstMapValue(map[string]interface{}{})
	assert.Error(t, err)
}

func TestRegionNames(t *testing.T) {
	assert.Equal(t, "Asia Pacific (Seoul)", GetRegionDescriptiveName("ap-northeast-2"))
	assert.Equal(t, "xx-nowhere-1", GetRegionDescriptiveName("xx-nowhere-1"))
	assert.Equal(t, "us-east-1", GetDefaultRegion())
}
