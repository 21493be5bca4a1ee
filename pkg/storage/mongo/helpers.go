package mongo

import "context"

var MongoTestConf = &Config{
	Host:   "localhost",
	Port:   "27018",
	DBName: "profanity_test",
}

// StorageConnect is a helper function that establishes a connection to the predefined test Mongo instance.
// It returns a connected Storage object or an error if connection fails.
func StorageConnect(ctx context.Context) (*Storage, error) {
	db, err := New(ctx, MongoTestConf)
	if err != nil {
		return nil, err
	}

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// RestoreDB drops the "words" collection to reset the database state.
// WARNING: Use only in tests to avoid data loss.
func RestoreDB(db *Storage) error {
	return db.coll().Drop(context.Background())
}
