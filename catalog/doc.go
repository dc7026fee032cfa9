// Package catalog summarizes the records of app-info and package-info
// caches and filters them with expressions.
//
//	a, err := datafile.LoadAppInfo(path)
//	if err != nil {
//	    return err
//	}
//	games, err := catalog.Filter(catalog.Apps(a),
//	    `Type == "game" && MetacriticScore >= 80`)
//
// Expressions use the expr language (github.com/expr-lang/expr) and see
// the record's fields by their Go names.
package catalog
