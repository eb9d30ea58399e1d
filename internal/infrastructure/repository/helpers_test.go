package repository

import (
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// toBSON renders a stored document the way the driver would return it
func toBSON(mt *mtest.T, doc interface{}) bson.D {
	raw, err := bson.Marshal(doc)
	require.NoError(mt, err)

	var d bson.D
	require.NoError(mt, bson.Unmarshal(raw, &d))
	return d
}
