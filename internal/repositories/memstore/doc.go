// Package memstore предоставляет реализацию репозиториев ссылок и пользователей
// для in-memory хранилища.
//
// Все методы репозитория преобразуют внутренние ошибки хранилища в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - memory.ErrDuplicateKey -> repositories.ErrDuplicateKey
//   - memory.ErrNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
//
// Мутации вида "прочитать-изменить-записать" (инкремент счетчика, частичные
// обновления) сериализуются мьютексом репозитория.
package memstore
