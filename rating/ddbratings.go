package rating

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// RatingRow is the DynamoDB shape of a rating record.
type RatingRow struct {
	Email                string                `dynamo:"email,hash"` // Primary key
	Rating               int                   `dynamo:"rating"`
	ContestsParticipated int                   `dynamo:"contests_participated"`
	RatingHistory        []HistoryRow          `dynamo:"rating_history"`
	ContestStats         map[string]*ModeStats `dynamo:"contest_stats"`
	Version              int                   `dynamo:"version"` // For optimistic locking
}

type HistoryRow struct {
	ContestID         string    `dynamo:"contest_id"`
	Mode              string    `dynamo:"mode"`
	OldRating         int       `dynamo:"old_rating"`
	NewRating         int       `dynamo:"new_rating"`
	RatingChange      int       `dynamo:"rating_change"`
	Placement         int       `dynamo:"placement"`
	TotalParticipants int       `dynamo:"total_participants"`
	Timestamp         time.Time `dynamo:"timestamp"`
}

// DynamoDbRatingsTable persists rating records in a DynamoDB table.
type DynamoDbRatingsTable struct {
	ddbClient    *dynamodb.Client
	tableName    string
	ratingsTable dynamo.Table
}

func NewDynamoDbRatingsTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbRatingsTable {
	ddb := &DynamoDbRatingsTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	ddb.ratingsTable = db.Table(ddb.tableName)

	return ddb
}

func (ddb *DynamoDbRatingsTable) Get(ctx context.Context, email string) (*Record, error) {
	row := new(RatingRow)

	err := ddb.ratingsTable.Get("email", email).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // no record yet
		}
		return nil, err
	}

	return rowToRecord(row), nil
}

// Save writes a rating record with optimistic locking. A concurrent
// writer that saved first makes the conditional put fail; the caller
// re-reads and retries.
func (ddb *DynamoDbRatingsTable) Save(ctx context.Context, rec *Record) error {
	row := recordToRow(rec)
	row.Version++

	put := ddb.ratingsTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	err := put.Run(ctx)
	if err != nil {
		if dynamo.IsCondCheckFailed(err) {
			return ErrRatingConflict().SetDebug(err)
		}
		return err
	}
	rec.Version = row.Version
	return nil
}

func (ddb *DynamoDbRatingsTable) List(ctx context.Context) ([]*Record, error) {
	var rows []*RatingRow
	err := ddb.ratingsTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	recs := make([]*Record, len(rows))
	for i, row := range rows {
		recs[i] = rowToRecord(row)
	}
	return recs, nil
}

func rowToRecord(row *RatingRow) *Record {
	rec := &Record{
		Email:                row.Email,
		Rating:               row.Rating,
		ContestsParticipated: row.ContestsParticipated,
		ContestStats:         row.ContestStats,
		Version:              row.Version,
	}
	if rec.ContestStats == nil {
		rec.ContestStats = make(map[string]*ModeStats)
	}
	for _, h := range row.RatingHistory {
		rec.RatingHistory = append(rec.RatingHistory, HistoryEntry(h))
	}
	return rec
}

func recordToRow(rec *Record) *RatingRow {
	row := &RatingRow{
		Email:                rec.Email,
		Rating:               rec.Rating,
		ContestsParticipated: rec.ContestsParticipated,
		ContestStats:         rec.ContestStats,
		Version:              rec.Version,
	}
	for _, h := range rec.RatingHistory {
		row.RatingHistory = append(row.RatingHistory, HistoryRow(h))
	}
	return row
}
