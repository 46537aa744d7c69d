package errs

var CountMatchingErrors = countMatchingErrors
