// Package results records completed homework runs.
//
// A Run captures the two answers, the winning pair, rewrite counts and a
// hash of the input, so repeated runs over the same file can be compared.
// Backends live in the storage subpackage; retention prunes old runs on a
// cron schedule.
//
// # Usage
//
//	store, err := storage.New(&cfg.Results, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	res, err := driver.Run(ctx, bytes.NewReader(input))
//	if err != nil {
//	    return err
//	}
//	err = store.Store(ctx, results.NewRun(res, path, input))
package results
