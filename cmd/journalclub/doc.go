// Command journalclub builds the journal club artifacts from monthly extracted records and the
// curated sessions table, and maintains that table and the subject tags.
package main
