package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseObjectID converts an opaque id to an ObjectID. Ids produced by another
// backend are not valid hex ObjectIDs and therefore name no document.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
