package spirv

// OperandClass describes what an operand slot of the grammar holds.
type OperandClass uint8

const (
	ClassID OperandClass = iota
	ClassLiteralInt
	ClassLiteralString
	// ClassContextLiteral is a literal whose width depends on the result type
	// (OpConstant).
	ClassContextLiteral
	ClassEnum
	// ClassRaw covers operand words whose shape is not modeled; each word is
	// kept as a literal.
	ClassRaw
)

// Quantifier says how often an operand slot may occur.
type Quantifier uint8

const (
	One Quantifier = iota
	Optional
	Variadic
)

// OperandSpec is one slot of an opcode's operand list.
type OperandSpec struct {
	Class OperandClass
	Enum  EnumKind
	Quant Quantifier
}

// OpInfo is the grammar entry of one opcode.
type OpInfo struct {
	HasType   bool
	HasResult bool
	Operands  []OperandSpec
}

var (
	gID        = OperandSpec{Class: ClassID}
	gIDOpt     = OperandSpec{Class: ClassID, Quant: Optional}
	gIDs       = OperandSpec{Class: ClassID, Quant: Variadic}
	gLit       = OperandSpec{Class: ClassLiteralInt}
	gLits      = OperandSpec{Class: ClassLiteralInt, Quant: Variadic}
	gStr       = OperandSpec{Class: ClassLiteralString}
	gStrOpt    = OperandSpec{Class: ClassLiteralString, Quant: Optional}
	gCtxLit    = OperandSpec{Class: ClassContextLiteral}
	gMemAccess = OperandSpec{Class: ClassEnum, Enum: EnumMemoryAccess, Quant: Optional}
	gRaw       = OperandSpec{Class: ClassRaw, Quant: Variadic}
)

func enum(kind EnumKind) OperandSpec { return OperandSpec{Class: ClassEnum, Enum: kind} }

func plain(ops ...OperandSpec) OpInfo { return OpInfo{Operands: ops} }
func result(ops ...OperandSpec) OpInfo { return OpInfo{HasResult: true, Operands: ops} }
func typedResult(ops ...OperandSpec) OpInfo { return OpInfo{HasType: true, HasResult: true, Operands: ops} }

var grammar = map[Op]OpInfo{
	OpNop:                                     plain(),
	OpUndef:                                   typedResult(),
	OpSourceContinued:                         plain(gStr),
	OpSource:                                  plain(enum(EnumSourceLanguage), gLit, gIDOpt, gStrOpt),
	OpSourceExtension:                         plain(gStr),
	OpName:                                    plain(gID, gStr),
	OpMemberName:                              plain(gID, gLit, gStr),
	OpString:                                  result(gStr),
	OpLine:                                    plain(gID, gLit, gLit),
	OpExtension:                               plain(gStr),
	OpExtInstImport:                           result(gStr),
	OpExtInst:                                 typedResult(gID, gLit, gIDs),
	OpMemoryModel:                             plain(enum(EnumAddressingModel), enum(EnumMemoryModel)),
	OpEntryPoint:                              plain(enum(EnumExecutionModel), gID, gStr, gIDs),
	OpExecutionMode:                           plain(gID, enum(EnumExecutionMode), gLits),
	OpCapability:                              plain(enum(EnumCapability)),
	OpTypeVoid:                                result(),
	OpTypeBool:                                result(),
	OpTypeInt:                                 result(gLit, gLit),
	OpTypeFloat:                               result(gLit),
	OpTypeVector:                              result(gID, gLit),
	OpTypeMatrix:                              result(gID, gLit),
	OpTypeImage:                               result(gID, gLits),
	OpTypeSampler:                             result(),
	OpTypeSampledImage:                        result(gID),
	OpTypeArray:                               result(gID, gID),
	OpTypeRuntimeArray:                        result(gID),
	OpTypeStruct:                              result(gIDs),
	OpTypeOpaque:                              result(gStr),
	OpTypePointer:                             result(enum(EnumStorageClass), gID),
	OpTypeFunction:                            result(gID, gIDs),
	OpTypeEvent:                               result(),
	OpTypeDeviceEvent:                         result(),
	OpTypeReserveId:                           result(),
	OpTypeQueue:                               result(),
	OpTypePipe:                                result(gLit),
	OpTypeForwardPointer:                      plain(gID, enum(EnumStorageClass)),
	OpConstantTrue:                            typedResult(),
	OpConstantFalse:                           typedResult(),
	OpConstant:                                typedResult(gCtxLit),
	OpConstantComposite:                       typedResult(gIDs),
	OpConstantSampler:                         typedResult(gLit, gLit, gLit),
	OpConstantNull:                            typedResult(),
	OpSpecConstantTrue:                        typedResult(),
	OpSpecConstantFalse:                       typedResult(),
	OpSpecConstant:                            typedResult(gCtxLit),
	OpSpecConstantComposite:                   typedResult(gIDs),
	OpSpecConstantOp:                          typedResult(gLit, gRaw),
	OpFunction:                                typedResult(enum(EnumFunctionControl), gID),
	OpFunctionParameter:                       typedResult(),
	OpFunctionEnd:                             plain(),
	OpFunctionCall:                            typedResult(gID, gIDs),
	OpVariable:                                typedResult(enum(EnumStorageClass), gIDOpt),
	OpImageTexelPointer:                       typedResult(gID, gID, gID),
	OpLoad:                                    typedResult(gID, gMemAccess, gLits),
	OpStore:                                   plain(gID, gID, gMemAccess, gLits),
	OpCopyMemory:                              plain(gID, gID, gMemAccess, gLits),
	OpCopyMemorySized:                         plain(gID, gID, gID, gMemAccess, gLits),
	OpAccessChain:                             typedResult(gID, gIDs),
	OpInBoundsAccessChain:                     typedResult(gID, gIDs),
	OpPtrAccessChain:                          typedResult(gID, gID, gIDs),
	OpArrayLength:                             typedResult(gID, gLit),
	OpGenericPtrMemSemantics:                  typedResult(gID),
	OpInBoundsPtrAccessChain:                  typedResult(gID, gID, gIDs),
	OpDecorate:                                plain(gID, enum(EnumDecoration), gLits),
	OpMemberDecorate:                          plain(gID, gLit, enum(EnumDecoration), gLits),
	OpDecorationGroup:                         result(),
	OpGroupDecorate:                           plain(gID, gIDs),
	OpGroupMemberDecorate:                     plain(gID, gRaw),
	OpVectorExtractDynamic:                    typedResult(gID, gID),
	OpVectorInsertDynamic:                     typedResult(gID, gID, gID),
	OpVectorShuffle:                           typedResult(gID, gID, gLits),
	OpCompositeConstruct:                      typedResult(gIDs),
	OpCompositeExtract:                        typedResult(gID, gLits),
	OpCompositeInsert:                         typedResult(gID, gID, gLits),
	OpCopyObject:                              typedResult(gID),
	OpTranspose:                               typedResult(gID),
	OpSampledImage:                            typedResult(gID, gID),
	OpImageSampleImplicitLod:                  typedResult(gID, gID, gRaw),
	OpImageSampleExplicitLod:                  typedResult(gID, gID, gRaw),
	OpImageSampleDrefImplicitLod:              typedResult(gID, gID, gID, gRaw),
	OpImageSampleDrefExplicitLod:              typedResult(gID, gID, gID, gRaw),
	OpImageSampleProjImplicitLod:              typedResult(gID, gID, gRaw),
	OpImageSampleProjExplicitLod:              typedResult(gID, gID, gRaw),
	OpImageSampleProjDrefImplicitLod:          typedResult(gID, gID, gID, gRaw),
	OpImageSampleProjDrefExplicitLod:          typedResult(gID, gID, gID, gRaw),
	OpImageFetch:                              typedResult(gID, gID, gRaw),
	OpImageGather:                             typedResult(gID, gID, gID, gRaw),
	OpImageDrefGather:                         typedResult(gID, gID, gID, gRaw),
	OpImageRead:                               typedResult(gID, gID, gRaw),
	OpImageWrite:                              plain(gID, gID, gID, gRaw),
	OpImage:                                   typedResult(gID),
	OpImageQueryFormat:                        typedResult(gID),
	OpImageQueryOrder:                         typedResult(gID),
	OpImageQuerySizeLod:                       typedResult(gID, gID),
	OpImageQuerySize:                          typedResult(gID),
	OpImageQueryLod:                           typedResult(gID, gID),
	OpImageQueryLevels:                        typedResult(gID),
	OpImageQuerySamples:                       typedResult(gID),
	OpConvertFToU:                             typedResult(gID),
	OpConvertFToS:                             typedResult(gID),
	OpConvertSToF:                             typedResult(gID),
	OpConvertUToF:                             typedResult(gID),
	OpUConvert:                                typedResult(gID),
	OpSConvert:                                typedResult(gID),
	OpFConvert:                                typedResult(gID),
	OpQuantizeToF16:                           typedResult(gID),
	OpConvertPtrToU:                           typedResult(gID),
	OpSatConvertSToU:                          typedResult(gID),
	OpSatConvertUToS:                          typedResult(gID),
	OpConvertUToPtr:                           typedResult(gID),
	OpPtrCastToGeneric:                        typedResult(gID),
	OpGenericCastToPtr:                        typedResult(gID),
	OpGenericCastToPtrExplicit:                typedResult(gID, enum(EnumStorageClass)),
	OpBitcast:                                 typedResult(gID),
	OpSNegate:                                 typedResult(gID),
	OpFNegate:                                 typedResult(gID),
	OpAny:                                     typedResult(gID),
	OpAll:                                     typedResult(gID),
	OpIsNan:                                   typedResult(gID),
	OpIsInf:                                   typedResult(gID),
	OpIsFinite:                                typedResult(gID),
	OpIsNormal:                                typedResult(gID),
	OpSignBitSet:                              typedResult(gID),
	OpLogicalNot:                              typedResult(gID),
	OpSelect:                                  typedResult(gID, gID, gID),
	OpNot:                                     typedResult(gID),
	OpBitFieldInsert:                          typedResult(gID, gID, gID, gID),
	OpBitFieldSExtract:                        typedResult(gID, gID, gID),
	OpBitFieldUExtract:                        typedResult(gID, gID, gID),
	OpBitReverse:                              typedResult(gID),
	OpBitCount:                                typedResult(gID),
	OpDPdx:                                    typedResult(gID),
	OpDPdy:                                    typedResult(gID),
	OpFwidth:                                  typedResult(gID),
	OpDPdxFine:                                typedResult(gID),
	OpDPdyFine:                                typedResult(gID),
	OpFwidthFine:                              typedResult(gID),
	OpDPdxCoarse:                              typedResult(gID),
	OpDPdyCoarse:                              typedResult(gID),
	OpFwidthCoarse:                            typedResult(gID),
	OpEmitVertex:                              plain(),
	OpEndPrimitive:                            plain(),
	OpEmitStreamVertex:                        plain(gID),
	OpEndStreamPrimitive:                      plain(gID),
	OpControlBarrier:                          plain(gID, gID, gID),
	OpMemoryBarrier:                           plain(gID, gID),
	OpAtomicLoad:                              typedResult(gID, gID, gID),
	OpAtomicStore:                             plain(gID, gID, gID, gID),
	OpAtomicExchange:                          typedResult(gID, gID, gID, gID),
	OpAtomicCompareExchange:                   typedResult(gID, gID, gID, gID, gID, gID),
	OpAtomicCompareExchangeWeak:               typedResult(gID, gID, gID, gID, gID, gID),
	OpAtomicIIncrement:                        typedResult(gID, gID, gID),
	OpAtomicIDecrement:                        typedResult(gID, gID, gID),
	OpAtomicIAdd:                              typedResult(gID, gID, gID, gID),
	OpAtomicISub:                              typedResult(gID, gID, gID, gID),
	OpAtomicSMin:                              typedResult(gID, gID, gID, gID),
	OpAtomicUMin:                              typedResult(gID, gID, gID, gID),
	OpAtomicSMax:                              typedResult(gID, gID, gID, gID),
	OpAtomicUMax:                              typedResult(gID, gID, gID, gID),
	OpAtomicAnd:                               typedResult(gID, gID, gID, gID),
	OpAtomicOr:                                typedResult(gID, gID, gID, gID),
	OpAtomicXor:                               typedResult(gID, gID, gID, gID),
	OpPhi:                                     typedResult(gIDs),
	OpLoopMerge:                               plain(gID, gID, enum(EnumLoopControl), gLits),
	OpSelectionMerge:                          plain(gID, enum(EnumSelectionControl)),
	OpLabel:                                   result(),
	OpBranch:                                  plain(gID),
	OpBranchConditional:                       plain(gID, gID, gID, gLits),
	OpSwitch:                                  plain(gID, gID, gLits),
	OpKill:                                    plain(),
	OpReturn:                                  plain(),
	OpReturnValue:                             plain(gID),
	OpUnreachable:                             plain(),
	OpLifetimeStart:                           plain(gID, gLit),
	OpLifetimeStop:                            plain(gID, gLit),
	OpGroupAsyncCopy:                          typedResult(gRaw),
	OpGroupWaitEvents:                         plain(gRaw),
	OpGroupAll:                                typedResult(gID, gID),
	OpGroupAny:                                typedResult(gID, gID),
	OpGroupBroadcast:                          typedResult(gID, gID, gID),
	OpGroupIAdd:                               typedResult(gID, gRaw),
	OpGroupFAdd:                               typedResult(gID, gRaw),
	OpGroupFMin:                               typedResult(gID, gRaw),
	OpGroupUMin:                               typedResult(gID, gRaw),
	OpGroupSMin:                               typedResult(gID, gRaw),
	OpGroupFMax:                               typedResult(gID, gRaw),
	OpGroupUMax:                               typedResult(gID, gRaw),
	OpGroupSMax:                               typedResult(gID, gRaw),
	OpReadPipe:                                typedResult(gRaw),
	OpWritePipe:                               typedResult(gRaw),
	OpReservedReadPipe:                        typedResult(gRaw),
	OpReservedWritePipe:                       typedResult(gRaw),
	OpReserveReadPipePackets:                  typedResult(gRaw),
	OpReserveWritePipePackets:                 typedResult(gRaw),
	OpCommitReadPipe:                          plain(gRaw),
	OpCommitWritePipe:                         plain(gRaw),
	OpIsValidReserveId:                        typedResult(gID),
	OpGetNumPipePackets:                       typedResult(gRaw),
	OpGetMaxPipePackets:                       typedResult(gRaw),
	OpGroupReserveReadPipePackets:             typedResult(gRaw),
	OpGroupReserveWritePipePackets:            typedResult(gRaw),
	OpGroupCommitReadPipe:                     plain(gRaw),
	OpGroupCommitWritePipe:                    plain(gRaw),
	OpEnqueueMarker:                           typedResult(gRaw),
	OpEnqueueKernel:                           typedResult(gRaw),
	OpGetKernelNDrangeSubGroupCount:           typedResult(gRaw),
	OpGetKernelNDrangeMaxSubGroupSize:         typedResult(gRaw),
	OpGetKernelWorkGroupSize:                  typedResult(gRaw),
	OpGetKernelPreferredWorkGroupSizeMultiple: typedResult(gRaw),
	OpRetainEvent:                             plain(gID),
	OpReleaseEvent:                            plain(gID),
	OpCreateUserEvent:                         typedResult(),
	OpIsValidEvent:                            typedResult(gID),
	OpSetUserEventStatus:                      plain(gID, gID),
	OpCaptureEventProfilingInfo:               plain(gID, gID, gID),
	OpGetDefaultQueue:                         typedResult(),
	OpBuildNDRange:                            typedResult(gID, gID, gID),
	OpImageSparseSampleImplicitLod:            typedResult(gID, gID, gRaw),
	OpImageSparseSampleExplicitLod:            typedResult(gID, gID, gRaw),
	OpImageSparseSampleDrefImplicitLod:        typedResult(gID, gID, gID, gRaw),
	OpImageSparseSampleDrefExplicitLod:        typedResult(gID, gID, gID, gRaw),
	OpImageSparseSampleProjImplicitLod:        typedResult(gID, gID, gRaw),
	OpImageSparseSampleProjExplicitLod:        typedResult(gID, gID, gRaw),
	OpImageSparseSampleProjDrefImplicitLod:    typedResult(gID, gID, gID, gRaw),
	OpImageSparseSampleProjDrefExplicitLod:    typedResult(gID, gID, gID, gRaw),
	OpImageSparseFetch:                        typedResult(gID, gID, gRaw),
	OpImageSparseGather:                       typedResult(gID, gID, gID, gRaw),
	OpImageSparseDrefGather:                   typedResult(gID, gID, gID, gRaw),
	OpImageSparseTexelsResident:               typedResult(gID),
	OpNoLine:                                  plain(),
	OpAtomicFlagTestAndSet:                    typedResult(gID, gID, gID),
	OpAtomicFlagClear:                         plain(gID, gID, gID),
	OpImageSparseRead:                         typedResult(gID, gID, gRaw),
	OpSizeOf:                                  typedResult(gID),
	OpTypePipeStorage:                         result(),
	OpConstantPipeStorage:                     typedResult(gLit, gLit, gLit),
	OpCreatePipeFromPipeStorage:               typedResult(gID),
	OpGetKernelLocalSizeForSubgroupCount:      typedResult(gRaw),
	OpGetKernelMaxNumSubgroups:                typedResult(gRaw),
	OpTypeNamedBarrier:                        result(),
	OpNamedBarrierInitialize:                  typedResult(gID),
	OpMemoryNamedBarrier:                      plain(gID, gID, gID),
	OpModuleProcessed:                         plain(gStr),
	OpExecutionModeId:                         plain(gID, enum(EnumExecutionMode), gIDs),
	OpDecorateId:                              plain(gID, enum(EnumDecoration), gIDs),
	OpGroupNonUniformElect:                    typedResult(gID),
	OpGroupNonUniformAll:                      typedResult(gID, gID),
	OpGroupNonUniformAny:                      typedResult(gID, gID),
	OpGroupNonUniformAllEqual:                 typedResult(gID, gID),
	OpGroupNonUniformBroadcast:                typedResult(gID, gID, gID),
	OpGroupNonUniformBroadcastFirst:           typedResult(gID, gID),
	OpGroupNonUniformBallot:                   typedResult(gID, gID),
	OpGroupNonUniformInverseBallot:            typedResult(gID, gID),
	OpGroupNonUniformBallotBitExtract:         typedResult(gID, gID, gID),
	OpGroupNonUniformBallotBitCount:           typedResult(gID, gRaw),
	OpGroupNonUniformBallotFindLSB:            typedResult(gID, gID),
	OpGroupNonUniformBallotFindMSB:            typedResult(gID, gID),
	OpGroupNonUniformShuffle:                  typedResult(gID, gID, gID),
	OpGroupNonUniformShuffleXor:               typedResult(gID, gID, gID),
	OpGroupNonUniformShuffleUp:                typedResult(gID, gID, gID),
	OpGroupNonUniformShuffleDown:              typedResult(gID, gID, gID),
	OpGroupNonUniformIAdd:                     typedResult(gID, gRaw),
	OpGroupNonUniformFAdd:                     typedResult(gID, gRaw),
	OpGroupNonUniformIMul:                     typedResult(gID, gRaw),
	OpGroupNonUniformFMul:                     typedResult(gID, gRaw),
	OpGroupNonUniformSMin:                     typedResult(gID, gRaw),
	OpGroupNonUniformUMin:                     typedResult(gID, gRaw),
	OpGroupNonUniformFMin:                     typedResult(gID, gRaw),
	OpGroupNonUniformSMax:                     typedResult(gID, gRaw),
	OpGroupNonUniformUMax:                     typedResult(gID, gRaw),
	OpGroupNonUniformFMax:                     typedResult(gID, gRaw),
	OpGroupNonUniformBitwiseAnd:               typedResult(gID, gRaw),
	OpGroupNonUniformBitwiseOr:                typedResult(gID, gRaw),
	OpGroupNonUniformBitwiseXor:               typedResult(gID, gRaw),
	OpGroupNonUniformLogicalAnd:               typedResult(gID, gRaw),
	OpGroupNonUniformLogicalOr:                typedResult(gID, gRaw),
	OpGroupNonUniformLogicalXor:               typedResult(gID, gRaw),
	OpGroupNonUniformQuadBroadcast:            typedResult(gID, gID, gID),
	OpGroupNonUniformQuadSwap:                 typedResult(gID, gID, gID),
	OpCopyLogical:                             typedResult(gID),
	OpTerminateInvocation:                     plain(),
}

func init() {
	for _, op := range binaryOps {
		grammar[op] = typedResult(gID, gID)
	}
}

var binaryOps = []Op{
	OpIAdd, OpFAdd, OpISub, OpFSub, OpIMul, OpFMul, OpUDiv, OpSDiv, OpFDiv, OpUMod, OpSRem, OpSMod,
	OpFRem, OpFMod, OpVectorTimesScalar, OpMatrixTimesScalar, OpVectorTimesMatrix,
	OpMatrixTimesVector, OpMatrixTimesMatrix, OpOuterProduct, OpDot, OpIAddCarry, OpISubBorrow,
	OpUMulExtended, OpSMulExtended, OpLessOrGreater, OpOrdered, OpUnordered, OpLogicalEqual,
	OpLogicalNotEqual, OpLogicalOr, OpLogicalAnd, OpIEqual, OpINotEqual, OpUGreaterThan,
	OpSGreaterThan, OpUGreaterThanEqual, OpSGreaterThanEqual, OpULessThan, OpSLessThan,
	OpULessThanEqual, OpSLessThanEqual, OpFOrdEqual, OpFUnordEqual, OpFOrdNotEqual, OpFUnordNotEqual,
	OpFOrdLessThan, OpFUnordLessThan, OpFOrdGreaterThan, OpFUnordGreaterThan, OpFOrdLessThanEqual,
	OpFUnordLessThanEqual, OpFOrdGreaterThanEqual, OpFUnordGreaterThanEqual, OpShiftRightLogical,
	OpShiftRightArith, OpShiftLeftLogical, OpBitwiseOr, OpBitwiseXor, OpBitwiseAnd, OpPtrEqual,
	OpPtrNotEqual, OpPtrDiff,
}

// Info returns the grammar entry for op.
func Info(op Op) (OpInfo, bool) {
	info, ok := grammar[op]
	return info, ok
}
