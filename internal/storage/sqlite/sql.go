package sqlite

const insertReviewSQL = `INSERT INTO reviews (text, sentiment, created_at) VALUES (?, ?, ?)`

// Ties on created_at fall back to id so the order is stable.
const listReviewsSQL = `
SELECT id, text, sentiment, created_at
FROM reviews
ORDER BY created_at DESC, id DESC
`

const listReviewsBySentimentSQL = `
SELECT id, text, sentiment, created_at
FROM reviews
WHERE sentiment = ?
ORDER BY created_at DESC, id DESC
`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`
