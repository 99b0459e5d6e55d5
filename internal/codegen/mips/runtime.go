package mips

// Runtime helper subroutines, emitted once and only when a quadruple stream
// actually exercises them. Each follows the same o32-lite convention the
// rest of this package's call-site emission uses: arguments in $a0/$a1,
// result in $v0, $ra saved by the caller.

const toStringRoutine = `to_string:
	li $v0, 9
	li $a2, 12
	syscall
	move $t0, $v0
	addi $t1, $t0, 11
	sb $zero, ($t1)
	move $t2, $a0
	bne $t2, $zero, to_string_digits
	addi $t1, $t1, -1
	li $t3, 48
	sb $t3, ($t1)
	b to_string_copy
to_string_digits:
	beq $t2, $zero, to_string_copy
	li $t3, 10
	div $t2, $t3
	mflo $t4
	mfhi $t5
	addi $t5, $t5, 48
	addi $t1, $t1, -1
	sb $t5, ($t1)
	move $t2, $t4
	b to_string_digits
to_string_copy:
	move $v0, $t1
	jr $ra

`

const concatStringRoutine = `concat_string:
	li $v0, 9
	li $a2, 256
	move $a1, $a2
	syscall
	move $t0, $v0
	move $t1, $a0
concat_string_copy_first:
	lb $t2, ($t1)
	beq $t2, $zero, concat_string_copy_second_start
	sb $t2, ($v0)
	addi $v0, 1
	addi $t1, 1
	b concat_string_copy_first
concat_string_copy_second_start:
	move $t1, $a1
concat_string_copy_second:
	lb $t2, ($t1)
	sb $t2, ($v0)
	beq $t2, $zero, concat_string_done
	addi $v0, 1
	addi $t1, 1
	b concat_string_copy_second
concat_string_done:
	move $v0, $t0
	jr $ra

`

const strEqualRoutine = `str_equal:
	move $t0, $a0
	move $t1, $a1
str_equal_loop:
	lb $t2, ($t0)
	lb $t3, ($t1)
	bne $t2, $t3, str_equal_false
	beq $t2, $zero, str_equal_true
	addi $t0, 1
	addi $t1, 1
	b str_equal_loop
str_equal_true:
	li $v0, 1
	jr $ra
str_equal_false:
	li $v0, 0
	jr $ra

`

const badIndexRoutine = `err_bad_index:
	la $a0, err_bad_index_msg
	li $v0, 4
	syscall
	li $v0, 10
	syscall

`
