// Package ast описывает синтаксическое дерево подмножества Ruby, которое
// понимает rbfmt.
//
// Узлы - обычные структуры за интерфейсом Node (закрытая сумма типов).
// Каждый узел знает строки исходника, которые он занимает: форматтеру они
// нужны для привязки комментариев и сохранения авторских переносов.
package ast
