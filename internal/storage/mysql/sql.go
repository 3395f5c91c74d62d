package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewSQL = "INSERT INTO reviews (`text`, sentiment, created_at) VALUES (?, ?, ?)"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// created_at is ascii_bin, so string order is time order; id breaks ties.
const listReviewsSQL = "SELECT id, `text`, sentiment, created_at\n" +
	"FROM reviews\n" +
	"ORDER BY created_at DESC, id DESC"

const listReviewsBySentimentSQL = "SELECT id, `text`, sentiment, created_at\n" +
	"FROM reviews\n" +
	"WHERE sentiment = ?\n" +
	"ORDER BY created_at DESC, id DESC"

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`
