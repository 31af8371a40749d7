package toolchain

import (
	"weave/internal/ast"
	"weave/internal/sema"
	"weave/internal/source"
	"weave/internal/types"
	"weave/internal/vm"
)

// Unit — скомпилированная программа, готовая к исполнению. Единица
// неизменяема; исполнять её можно сколько угодно раз, каждый Run идёт
// на свежей виртуальной машине.
type Unit struct {
	fs     *source.FileSet
	fileID source.FileID
	file   *ast.File
	sema   sema.Result
	types  *types.Interner
}

// Run исполняет программу, направляя трассировочные вызовы в host.
// Ошибка исполнения возвращается как *vm.RuntimeError; позиция в ней
// указывает в текст инструментированной программы.
func (u *Unit) Run(host vm.Host) error {
	return vm.New(u.types, host).Run(u.file, u.sema)
}

// FileSet возвращает набор файлов единицы. Позиции ошибок Run
// резолвятся через него.
func (u *Unit) FileSet() *source.FileSet {
	return u.fs
}
