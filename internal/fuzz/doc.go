// Package fuzztests houses Go fuzz harnesses that exercise the diagnostic
// reporting pipeline (raw fragment -> rule table -> message, and serialized
// token -> term decoder). Its goal is to smoke test robustness and guard
// against panics or hangs on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через term.Parse и diag.Normalize
// и проверять, что инварианты конвейера держатся на любом вводе.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/term, internal/diag.

package fuzztests
