// Package retention prunes aged traffic logs and their reports from the
// output directory, optionally on a cron schedule.
package retention
