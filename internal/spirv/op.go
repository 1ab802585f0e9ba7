// Package spirv provides the instruction model of SPIR-V modules together with
// a binary decoder and encoder.
//
// The decoder never builds a module on its own: it pushes a Header and then
// every Instruction, in stream order, into a Consumer. Higher layers decide
// what to keep.
package spirv

import "fmt"

// Op is a SPIR-V opcode.
type Op uint16

// Core opcodes. Values match the Khronos SPIR-V registry.
const (
	OpNop                                     Op = 0
	OpUndef                                   Op = 1
	OpSourceContinued                         Op = 2
	OpSource                                  Op = 3
	OpSourceExtension                         Op = 4
	OpName                                    Op = 5
	OpMemberName                              Op = 6
	OpString                                  Op = 7
	OpLine                                    Op = 8
	OpExtension                               Op = 10
	OpExtInstImport                           Op = 11
	OpExtInst                                 Op = 12
	OpMemoryModel                             Op = 14
	OpEntryPoint                              Op = 15
	OpExecutionMode                           Op = 16
	OpCapability                              Op = 17
	OpTypeVoid                                Op = 19
	OpTypeBool                                Op = 20
	OpTypeInt                                 Op = 21
	OpTypeFloat                               Op = 22
	OpTypeVector                              Op = 23
	OpTypeMatrix                              Op = 24
	OpTypeImage                               Op = 25
	OpTypeSampler                             Op = 26
	OpTypeSampledImage                        Op = 27
	OpTypeArray                               Op = 28
	OpTypeRuntimeArray                        Op = 29
	OpTypeStruct                              Op = 30
	OpTypeOpaque                              Op = 31
	OpTypePointer                             Op = 32
	OpTypeFunction                            Op = 33
	OpTypeEvent                               Op = 34
	OpTypeDeviceEvent                         Op = 35
	OpTypeReserveId                           Op = 36
	OpTypeQueue                               Op = 37
	OpTypePipe                                Op = 38
	OpTypeForwardPointer                      Op = 39
	OpConstantTrue                            Op = 41
	OpConstantFalse                           Op = 42
	OpConstant                                Op = 43
	OpConstantComposite                       Op = 44
	OpConstantSampler                         Op = 45
	OpConstantNull                            Op = 46
	OpSpecConstantTrue                        Op = 48
	OpSpecConstantFalse                       Op = 49
	OpSpecConstant                            Op = 50
	OpSpecConstantComposite                   Op = 51
	OpSpecConstantOp                          Op = 52
	OpFunction                                Op = 54
	OpFunctionParameter                       Op = 55
	OpFunctionEnd                             Op = 56
	OpFunctionCall                            Op = 57
	OpVariable                                Op = 59
	OpImageTexelPointer                       Op = 60
	OpLoad                                    Op = 61
	OpStore                                   Op = 62
	OpCopyMemory                              Op = 63
	OpCopyMemorySized                         Op = 64
	OpAccessChain                             Op = 65
	OpInBoundsAccessChain                     Op = 66
	OpPtrAccessChain                          Op = 67
	OpArrayLength                             Op = 68
	OpGenericPtrMemSemantics                  Op = 69
	OpInBoundsPtrAccessChain                  Op = 70
	OpDecorate                                Op = 71
	OpMemberDecorate                          Op = 72
	OpDecorationGroup                         Op = 73
	OpGroupDecorate                           Op = 74
	OpGroupMemberDecorate                     Op = 75
	OpVectorExtractDynamic                    Op = 77
	OpVectorInsertDynamic                     Op = 78
	OpVectorShuffle                           Op = 79
	OpCompositeConstruct                      Op = 80
	OpCompositeExtract                        Op = 81
	OpCompositeInsert                         Op = 82
	OpCopyObject                              Op = 83
	OpTranspose                               Op = 84
	OpSampledImage                            Op = 86
	OpImageSampleImplicitLod                  Op = 87
	OpImageSampleExplicitLod                  Op = 88
	OpImageSampleDrefImplicitLod              Op = 89
	OpImageSampleDrefExplicitLod              Op = 90
	OpImageSampleProjImplicitLod              Op = 91
	OpImageSampleProjExplicitLod              Op = 92
	OpImageSampleProjDrefImplicitLod          Op = 93
	OpImageSampleProjDrefExplicitLod          Op = 94
	OpImageFetch                              Op = 95
	OpImageGather                             Op = 96
	OpImageDrefGather                         Op = 97
	OpImageRead                               Op = 98
	OpImageWrite                              Op = 99
	OpImage                                   Op = 100
	OpImageQueryFormat                        Op = 101
	OpImageQueryOrder                         Op = 102
	OpImageQuerySizeLod                       Op = 103
	OpImageQuerySize                          Op = 104
	OpImageQueryLod                           Op = 105
	OpImageQueryLevels                        Op = 106
	OpImageQuerySamples                       Op = 107
	OpConvertFToU                             Op = 109
	OpConvertFToS                             Op = 110
	OpConvertSToF                             Op = 111
	OpConvertUToF                             Op = 112
	OpUConvert                                Op = 113
	OpSConvert                                Op = 114
	OpFConvert                                Op = 115
	OpQuantizeToF16                           Op = 116
	OpConvertPtrToU                           Op = 117
	OpSatConvertSToU                          Op = 118
	OpSatConvertUToS                          Op = 119
	OpConvertUToPtr                           Op = 120
	OpPtrCastToGeneric                        Op = 121
	OpGenericCastToPtr                        Op = 122
	OpGenericCastToPtrExplicit                Op = 123
	OpBitcast                                 Op = 124
	OpSNegate                                 Op = 126
	OpFNegate                                 Op = 127
	OpIAdd                                    Op = 128
	OpFAdd                                    Op = 129
	OpISub                                    Op = 130
	OpFSub                                    Op = 131
	OpIMul                                    Op = 132
	OpFMul                                    Op = 133
	OpUDiv                                    Op = 134
	OpSDiv                                    Op = 135
	OpFDiv                                    Op = 136
	OpUMod                                    Op = 137
	OpSRem                                    Op = 138
	OpSMod                                    Op = 139
	OpFRem                                    Op = 140
	OpFMod                                    Op = 141
	OpVectorTimesScalar                       Op = 142
	OpMatrixTimesScalar                       Op = 143
	OpVectorTimesMatrix                       Op = 144
	OpMatrixTimesVector                       Op = 145
	OpMatrixTimesMatrix                       Op = 146
	OpOuterProduct                            Op = 147
	OpDot                                     Op = 148
	OpIAddCarry                               Op = 149
	OpISubBorrow                              Op = 150
	OpUMulExtended                            Op = 151
	OpSMulExtended                            Op = 152
	OpAny                                     Op = 154
	OpAll                                     Op = 155
	OpIsNan                                   Op = 156
	OpIsInf                                   Op = 157
	OpIsFinite                                Op = 158
	OpIsNormal                                Op = 159
	OpSignBitSet                              Op = 160
	OpLessOrGreater                           Op = 161
	OpOrdered                                 Op = 162
	OpUnordered                               Op = 163
	OpLogicalEqual                            Op = 164
	OpLogicalNotEqual                         Op = 165
	OpLogicalOr                               Op = 166
	OpLogicalAnd                              Op = 167
	OpLogicalNot                              Op = 168
	OpSelect                                  Op = 169
	OpIEqual                                  Op = 170
	OpINotEqual                               Op = 171
	OpUGreaterThan                            Op = 172
	OpSGreaterThan                            Op = 173
	OpUGreaterThanEqual                       Op = 174
	OpSGreaterThanEqual                       Op = 175
	OpULessThan                               Op = 176
	OpSLessThan                               Op = 177
	OpULessThanEqual                          Op = 178
	OpSLessThanEqual                          Op = 179
	OpFOrdEqual                               Op = 180
	OpFUnordEqual                             Op = 181
	OpFOrdNotEqual                            Op = 182
	OpFUnordNotEqual                          Op = 183
	OpFOrdLessThan                            Op = 184
	OpFUnordLessThan                          Op = 185
	OpFOrdGreaterThan                         Op = 186
	OpFUnordGreaterThan                       Op = 187
	OpFOrdLessThanEqual                       Op = 188
	OpFUnordLessThanEqual                     Op = 189
	OpFOrdGreaterThanEqual                    Op = 190
	OpFUnordGreaterThanEqual                  Op = 191
	OpShiftRightLogical                       Op = 194
	OpShiftRightArith                         Op = 195
	OpShiftLeftLogical                        Op = 196
	OpBitwiseOr                               Op = 197
	OpBitwiseXor                              Op = 198
	OpBitwiseAnd                              Op = 199
	OpNot                                     Op = 200
	OpBitFieldInsert                          Op = 201
	OpBitFieldSExtract                        Op = 202
	OpBitFieldUExtract                        Op = 203
	OpBitReverse                              Op = 204
	OpBitCount                                Op = 205
	OpDPdx                                    Op = 207
	OpDPdy                                    Op = 208
	OpFwidth                                  Op = 209
	OpDPdxFine                                Op = 210
	OpDPdyFine                                Op = 211
	OpFwidthFine                              Op = 212
	OpDPdxCoarse                              Op = 213
	OpDPdyCoarse                              Op = 214
	OpFwidthCoarse                            Op = 215
	OpEmitVertex                              Op = 218
	OpEndPrimitive                            Op = 219
	OpEmitStreamVertex                        Op = 220
	OpEndStreamPrimitive                      Op = 221
	OpControlBarrier                          Op = 224
	OpMemoryBarrier                           Op = 225
	OpAtomicLoad                              Op = 227
	OpAtomicStore                             Op = 228
	OpAtomicExchange                          Op = 229
	OpAtomicCompareExchange                   Op = 230
	OpAtomicCompareExchangeWeak               Op = 231
	OpAtomicIIncrement                        Op = 232
	OpAtomicIDecrement                        Op = 233
	OpAtomicIAdd                              Op = 234
	OpAtomicISub                              Op = 235
	OpAtomicSMin                              Op = 236
	OpAtomicUMin                              Op = 237
	OpAtomicSMax                              Op = 238
	OpAtomicUMax                              Op = 239
	OpAtomicAnd                               Op = 240
	OpAtomicOr                                Op = 241
	OpAtomicXor                               Op = 242
	OpPhi                                     Op = 245
	OpLoopMerge                               Op = 246
	OpSelectionMerge                          Op = 247
	OpLabel                                   Op = 248
	OpBranch                                  Op = 249
	OpBranchConditional                       Op = 250
	OpSwitch                                  Op = 251
	OpKill                                    Op = 252
	OpReturn                                  Op = 253
	OpReturnValue                             Op = 254
	OpUnreachable                             Op = 255
	OpLifetimeStart                           Op = 256
	OpLifetimeStop                            Op = 257
	OpGroupAsyncCopy                          Op = 259
	OpGroupWaitEvents                         Op = 260
	OpGroupAll                                Op = 261
	OpGroupAny                                Op = 262
	OpGroupBroadcast                          Op = 263
	OpGroupIAdd                               Op = 264
	OpGroupFAdd                               Op = 265
	OpGroupFMin                               Op = 266
	OpGroupUMin                               Op = 267
	OpGroupSMin                               Op = 268
	OpGroupFMax                               Op = 269
	OpGroupUMax                               Op = 270
	OpGroupSMax                               Op = 271
	OpReadPipe                                Op = 274
	OpWritePipe                               Op = 275
	OpReservedReadPipe                        Op = 276
	OpReservedWritePipe                       Op = 277
	OpReserveReadPipePackets                  Op = 278
	OpReserveWritePipePackets                 Op = 279
	OpCommitReadPipe                          Op = 280
	OpCommitWritePipe                         Op = 281
	OpIsValidReserveId                        Op = 282
	OpGetNumPipePackets                       Op = 283
	OpGetMaxPipePackets                       Op = 284
	OpGroupReserveReadPipePackets             Op = 285
	OpGroupReserveWritePipePackets            Op = 286
	OpGroupCommitReadPipe                     Op = 287
	OpGroupCommitWritePipe                    Op = 288
	OpEnqueueMarker                           Op = 291
	OpEnqueueKernel                           Op = 292
	OpGetKernelNDrangeSubGroupCount           Op = 293
	OpGetKernelNDrangeMaxSubGroupSize         Op = 294
	OpGetKernelWorkGroupSize                  Op = 295
	OpGetKernelPreferredWorkGroupSizeMultiple Op = 296
	OpRetainEvent                             Op = 297
	OpReleaseEvent                            Op = 298
	OpCreateUserEvent                         Op = 299
	OpIsValidEvent                            Op = 300
	OpSetUserEventStatus                      Op = 301
	OpCaptureEventProfilingInfo               Op = 302
	OpGetDefaultQueue                         Op = 303
	OpBuildNDRange                            Op = 304
	OpImageSparseSampleImplicitLod            Op = 305
	OpImageSparseSampleExplicitLod            Op = 306
	OpImageSparseSampleDrefImplicitLod        Op = 307
	OpImageSparseSampleDrefExplicitLod        Op = 308
	OpImageSparseSampleProjImplicitLod        Op = 309
	OpImageSparseSampleProjExplicitLod        Op = 310
	OpImageSparseSampleProjDrefImplicitLod    Op = 311
	OpImageSparseSampleProjDrefExplicitLod    Op = 312
	OpImageSparseFetch                        Op = 313
	OpImageSparseGather                       Op = 314
	OpImageSparseDrefGather                   Op = 315
	OpImageSparseTexelsResident               Op = 316
	OpNoLine                                  Op = 317
	OpAtomicFlagTestAndSet                    Op = 318
	OpAtomicFlagClear                         Op = 319
	OpImageSparseRead                         Op = 320
	OpSizeOf                                  Op = 321
	OpTypePipeStorage                         Op = 322
	OpConstantPipeStorage                     Op = 323
	OpCreatePipeFromPipeStorage               Op = 324
	OpGetKernelLocalSizeForSubgroupCount      Op = 325
	OpGetKernelMaxNumSubgroups                Op = 326
	OpTypeNamedBarrier                        Op = 327
	OpNamedBarrierInitialize                  Op = 328
	OpMemoryNamedBarrier                      Op = 329
	OpModuleProcessed                         Op = 330
	OpExecutionModeId                         Op = 331
	OpDecorateId                              Op = 332
	OpGroupNonUniformElect                    Op = 333
	OpGroupNonUniformAll                      Op = 334
	OpGroupNonUniformAny                      Op = 335
	OpGroupNonUniformAllEqual                 Op = 336
	OpGroupNonUniformBroadcast                Op = 337
	OpGroupNonUniformBroadcastFirst           Op = 338
	OpGroupNonUniformBallot                   Op = 339
	OpGroupNonUniformInverseBallot            Op = 340
	OpGroupNonUniformBallotBitExtract         Op = 341
	OpGroupNonUniformBallotBitCount           Op = 342
	OpGroupNonUniformBallotFindLSB            Op = 343
	OpGroupNonUniformBallotFindMSB            Op = 344
	OpGroupNonUniformShuffle                  Op = 345
	OpGroupNonUniformShuffleXor               Op = 346
	OpGroupNonUniformShuffleUp                Op = 347
	OpGroupNonUniformShuffleDown              Op = 348
	OpGroupNonUniformIAdd                     Op = 349
	OpGroupNonUniformFAdd                     Op = 350
	OpGroupNonUniformIMul                     Op = 351
	OpGroupNonUniformFMul                     Op = 352
	OpGroupNonUniformSMin                     Op = 353
	OpGroupNonUniformUMin                     Op = 354
	OpGroupNonUniformFMin                     Op = 355
	OpGroupNonUniformSMax                     Op = 356
	OpGroupNonUniformUMax                     Op = 357
	OpGroupNonUniformFMax                     Op = 358
	OpGroupNonUniformBitwiseAnd               Op = 359
	OpGroupNonUniformBitwiseOr                Op = 360
	OpGroupNonUniformBitwiseXor               Op = 361
	OpGroupNonUniformLogicalAnd               Op = 362
	OpGroupNonUniformLogicalOr                Op = 363
	OpGroupNonUniformLogicalXor               Op = 364
	OpGroupNonUniformQuadBroadcast            Op = 365
	OpGroupNonUniformQuadSwap                 Op = 366
	OpCopyLogical                             Op = 400
	OpPtrEqual                                Op = 401
	OpPtrNotEqual                             Op = 402
	OpPtrDiff                                 Op = 403
	OpTerminateInvocation                     Op = 4416
)

var opNames = map[Op]string{
	OpNop:                                     "OpNop",
	OpUndef:                                   "OpUndef",
	OpSourceContinued:                         "OpSourceContinued",
	OpSource:                                  "OpSource",
	OpSourceExtension:                         "OpSourceExtension",
	OpName:                                    "OpName",
	OpMemberName:                              "OpMemberName",
	OpString:                                  "OpString",
	OpLine:                                    "OpLine",
	OpExtension:                               "OpExtension",
	OpExtInstImport:                           "OpExtInstImport",
	OpExtInst:                                 "OpExtInst",
	OpMemoryModel:                             "OpMemoryModel",
	OpEntryPoint:                              "OpEntryPoint",
	OpExecutionMode:                           "OpExecutionMode",
	OpCapability:                              "OpCapability",
	OpTypeVoid:                                "OpTypeVoid",
	OpTypeBool:                                "OpTypeBool",
	OpTypeInt:                                 "OpTypeInt",
	OpTypeFloat:                               "OpTypeFloat",
	OpTypeVector:                              "OpTypeVector",
	OpTypeMatrix:                              "OpTypeMatrix",
	OpTypeImage:                               "OpTypeImage",
	OpTypeSampler:                             "OpTypeSampler",
	OpTypeSampledImage:                        "OpTypeSampledImage",
	OpTypeArray:                               "OpTypeArray",
	OpTypeRuntimeArray:                        "OpTypeRuntimeArray",
	OpTypeStruct:                              "OpTypeStruct",
	OpTypeOpaque:                              "OpTypeOpaque",
	OpTypePointer:                             "OpTypePointer",
	OpTypeFunction:                            "OpTypeFunction",
	OpTypeEvent:                               "OpTypeEvent",
	OpTypeDeviceEvent:                         "OpTypeDeviceEvent",
	OpTypeReserveId:                           "OpTypeReserveId",
	OpTypeQueue:                               "OpTypeQueue",
	OpTypePipe:                                "OpTypePipe",
	OpTypeForwardPointer:                      "OpTypeForwardPointer",
	OpConstantTrue:                            "OpConstantTrue",
	OpConstantFalse:                           "OpConstantFalse",
	OpConstant:                                "OpConstant",
	OpConstantComposite:                       "OpConstantComposite",
	OpConstantSampler:                         "OpConstantSampler",
	OpConstantNull:                            "OpConstantNull",
	OpSpecConstantTrue:                        "OpSpecConstantTrue",
	OpSpecConstantFalse:                       "OpSpecConstantFalse",
	OpSpecConstant:                            "OpSpecConstant",
	OpSpecConstantComposite:                   "OpSpecConstantComposite",
	OpSpecConstantOp:                          "OpSpecConstantOp",
	OpFunction:                                "OpFunction",
	OpFunctionParameter:                       "OpFunctionParameter",
	OpFunctionEnd:                             "OpFunctionEnd",
	OpFunctionCall:                            "OpFunctionCall",
	OpVariable:                                "OpVariable",
	OpImageTexelPointer:                       "OpImageTexelPointer",
	OpLoad:                                    "OpLoad",
	OpStore:                                   "OpStore",
	OpCopyMemory:                              "OpCopyMemory",
	OpCopyMemorySized:                         "OpCopyMemorySized",
	OpAccessChain:                             "OpAccessChain",
	OpInBoundsAccessChain:                     "OpInBoundsAccessChain",
	OpPtrAccessChain:                          "OpPtrAccessChain",
	OpArrayLength:                             "OpArrayLength",
	OpGenericPtrMemSemantics:                  "OpGenericPtrMemSemantics",
	OpInBoundsPtrAccessChain:                  "OpInBoundsPtrAccessChain",
	OpDecorate:                                "OpDecorate",
	OpMemberDecorate:                          "OpMemberDecorate",
	OpDecorationGroup:                         "OpDecorationGroup",
	OpGroupDecorate:                           "OpGroupDecorate",
	OpGroupMemberDecorate:                     "OpGroupMemberDecorate",
	OpVectorExtractDynamic:                    "OpVectorExtractDynamic",
	OpVectorInsertDynamic:                     "OpVectorInsertDynamic",
	OpVectorShuffle:                           "OpVectorShuffle",
	OpCompositeConstruct:                      "OpCompositeConstruct",
	OpCompositeExtract:                        "OpCompositeExtract",
	OpCompositeInsert:                         "OpCompositeInsert",
	OpCopyObject:                              "OpCopyObject",
	OpTranspose:                               "OpTranspose",
	OpSampledImage:                            "OpSampledImage",
	OpImageSampleImplicitLod:                  "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod:                  "OpImageSampleExplicitLod",
	OpImageSampleDrefImplicitLod:              "OpImageSampleDrefImplicitLod",
	OpImageSampleDrefExplicitLod:              "OpImageSampleDrefExplicitLod",
	OpImageSampleProjImplicitLod:              "OpImageSampleProjImplicitLod",
	OpImageSampleProjExplicitLod:              "OpImageSampleProjExplicitLod",
	OpImageSampleProjDrefImplicitLod:          "OpImageSampleProjDrefImplicitLod",
	OpImageSampleProjDrefExplicitLod:          "OpImageSampleProjDrefExplicitLod",
	OpImageFetch:                              "OpImageFetch",
	OpImageGather:                             "OpImageGather",
	OpImageDrefGather:                         "OpImageDrefGather",
	OpImageRead:                               "OpImageRead",
	OpImageWrite:                              "OpImageWrite",
	OpImage:                                   "OpImage",
	OpImageQueryFormat:                        "OpImageQueryFormat",
	OpImageQueryOrder:                         "OpImageQueryOrder",
	OpImageQuerySizeLod:                       "OpImageQuerySizeLod",
	OpImageQuerySize:                          "OpImageQuerySize",
	OpImageQueryLod:                           "OpImageQueryLod",
	OpImageQueryLevels:                        "OpImageQueryLevels",
	OpImageQuerySamples:                       "OpImageQuerySamples",
	OpConvertFToU:                             "OpConvertFToU",
	OpConvertFToS:                             "OpConvertFToS",
	OpConvertSToF:                             "OpConvertSToF",
	OpConvertUToF:                             "OpConvertUToF",
	OpUConvert:                                "OpUConvert",
	OpSConvert:                                "OpSConvert",
	OpFConvert:                                "OpFConvert",
	OpQuantizeToF16:                           "OpQuantizeToF16",
	OpConvertPtrToU:                           "OpConvertPtrToU",
	OpSatConvertSToU:                          "OpSatConvertSToU",
	OpSatConvertUToS:                          "OpSatConvertUToS",
	OpConvertUToPtr:                           "OpConvertUToPtr",
	OpPtrCastToGeneric:                        "OpPtrCastToGeneric",
	OpGenericCastToPtr:                        "OpGenericCastToPtr",
	OpGenericCastToPtrExplicit:                "OpGenericCastToPtrExplicit",
	OpBitcast:                                 "OpBitcast",
	OpSNegate:                                 "OpSNegate",
	OpFNegate:                                 "OpFNegate",
	OpIAdd:                                    "OpIAdd",
	OpFAdd:                                    "OpFAdd",
	OpISub:                                    "OpISub",
	OpFSub:                                    "OpFSub",
	OpIMul:                                    "OpIMul",
	OpFMul:                                    "OpFMul",
	OpUDiv:                                    "OpUDiv",
	OpSDiv:                                    "OpSDiv",
	OpFDiv:                                    "OpFDiv",
	OpUMod:                                    "OpUMod",
	OpSRem:                                    "OpSRem",
	OpSMod:                                    "OpSMod",
	OpFRem:                                    "OpFRem",
	OpFMod:                                    "OpFMod",
	OpVectorTimesScalar:                       "OpVectorTimesScalar",
	OpMatrixTimesScalar:                       "OpMatrixTimesScalar",
	OpVectorTimesMatrix:                       "OpVectorTimesMatrix",
	OpMatrixTimesVector:                       "OpMatrixTimesVector",
	OpMatrixTimesMatrix:                       "OpMatrixTimesMatrix",
	OpOuterProduct:                            "OpOuterProduct",
	OpDot:                                     "OpDot",
	OpIAddCarry:                               "OpIAddCarry",
	OpISubBorrow:                              "OpISubBorrow",
	OpUMulExtended:                            "OpUMulExtended",
	OpSMulExtended:                            "OpSMulExtended",
	OpAny:                                     "OpAny",
	OpAll:                                     "OpAll",
	OpIsNan:                                   "OpIsNan",
	OpIsInf:                                   "OpIsInf",
	OpIsFinite:                                "OpIsFinite",
	OpIsNormal:                                "OpIsNormal",
	OpSignBitSet:                              "OpSignBitSet",
	OpLessOrGreater:                           "OpLessOrGreater",
	OpOrdered:                                 "OpOrdered",
	OpUnordered:                               "OpUnordered",
	OpLogicalEqual:                            "OpLogicalEqual",
	OpLogicalNotEqual:                         "OpLogicalNotEqual",
	OpLogicalOr:                               "OpLogicalOr",
	OpLogicalAnd:                              "OpLogicalAnd",
	OpLogicalNot:                              "OpLogicalNot",
	OpSelect:                                  "OpSelect",
	OpIEqual:                                  "OpIEqual",
	OpINotEqual:                               "OpINotEqual",
	OpUGreaterThan:                            "OpUGreaterThan",
	OpSGreaterThan:                            "OpSGreaterThan",
	OpUGreaterThanEqual:                       "OpUGreaterThanEqual",
	OpSGreaterThanEqual:                       "OpSGreaterThanEqual",
	OpULessThan:                               "OpULessThan",
	OpSLessThan:                               "OpSLessThan",
	OpULessThanEqual:                          "OpULessThanEqual",
	OpSLessThanEqual:                          "OpSLessThanEqual",
	OpFOrdEqual:                               "OpFOrdEqual",
	OpFUnordEqual:                             "OpFUnordEqual",
	OpFOrdNotEqual:                            "OpFOrdNotEqual",
	OpFUnordNotEqual:                          "OpFUnordNotEqual",
	OpFOrdLessThan:                            "OpFOrdLessThan",
	OpFUnordLessThan:                          "OpFUnordLessThan",
	OpFOrdGreaterThan:                         "OpFOrdGreaterThan",
	OpFUnordGreaterThan:                       "OpFUnordGreaterThan",
	OpFOrdLessThanEqual:                       "OpFOrdLessThanEqual",
	OpFUnordLessThanEqual:                     "OpFUnordLessThanEqual",
	OpFOrdGreaterThanEqual:                    "OpFOrdGreaterThanEqual",
	OpFUnordGreaterThanEqual:                  "OpFUnordGreaterThanEqual",
	OpShiftRightLogical:                       "OpShiftRightLogical",
	OpShiftRightArith:                         "OpShiftRightArithmetic",
	OpShiftLeftLogical:                        "OpShiftLeftLogical",
	OpBitwiseOr:                               "OpBitwiseOr",
	OpBitwiseXor:                              "OpBitwiseXor",
	OpBitwiseAnd:                              "OpBitwiseAnd",
	OpNot:                                     "OpNot",
	OpBitFieldInsert:                          "OpBitFieldInsert",
	OpBitFieldSExtract:                        "OpBitFieldSExtract",
	OpBitFieldUExtract:                        "OpBitFieldUExtract",
	OpBitReverse:                              "OpBitReverse",
	OpBitCount:                                "OpBitCount",
	OpDPdx:                                    "OpDPdx",
	OpDPdy:                                    "OpDPdy",
	OpFwidth:                                  "OpFwidth",
	OpDPdxFine:                                "OpDPdxFine",
	OpDPdyFine:                                "OpDPdyFine",
	OpFwidthFine:                              "OpFwidthFine",
	OpDPdxCoarse:                              "OpDPdxCoarse",
	OpDPdyCoarse:                              "OpDPdyCoarse",
	OpFwidthCoarse:                            "OpFwidthCoarse",
	OpEmitVertex:                              "OpEmitVertex",
	OpEndPrimitive:                            "OpEndPrimitive",
	OpEmitStreamVertex:                        "OpEmitStreamVertex",
	OpEndStreamPrimitive:                      "OpEndStreamPrimitive",
	OpControlBarrier:                          "OpControlBarrier",
	OpMemoryBarrier:                           "OpMemoryBarrier",
	OpAtomicLoad:                              "OpAtomicLoad",
	OpAtomicStore:                             "OpAtomicStore",
	OpAtomicExchange:                          "OpAtomicExchange",
	OpAtomicCompareExchange:                   "OpAtomicCompareExchange",
	OpAtomicCompareExchangeWeak:               "OpAtomicCompareExchangeWeak",
	OpAtomicIIncrement:                        "OpAtomicIIncrement",
	OpAtomicIDecrement:                        "OpAtomicIDecrement",
	OpAtomicIAdd:                              "OpAtomicIAdd",
	OpAtomicISub:                              "OpAtomicISub",
	OpAtomicSMin:                              "OpAtomicSMin",
	OpAtomicUMin:                              "OpAtomicUMin",
	OpAtomicSMax:                              "OpAtomicSMax",
	OpAtomicUMax:                              "OpAtomicUMax",
	OpAtomicAnd:                               "OpAtomicAnd",
	OpAtomicOr:                                "OpAtomicOr",
	OpAtomicXor:                               "OpAtomicXor",
	OpPhi:                                     "OpPhi",
	OpLoopMerge:                               "OpLoopMerge",
	OpSelectionMerge:                          "OpSelectionMerge",
	OpLabel:                                   "OpLabel",
	OpBranch:                                  "OpBranch",
	OpBranchConditional:                       "OpBranchConditional",
	OpSwitch:                                  "OpSwitch",
	OpKill:                                    "OpKill",
	OpReturn:                                  "OpReturn",
	OpReturnValue:                             "OpReturnValue",
	OpUnreachable:                             "OpUnreachable",
	OpLifetimeStart:                           "OpLifetimeStart",
	OpLifetimeStop:                            "OpLifetimeStop",
	OpGroupAsyncCopy:                          "OpGroupAsyncCopy",
	OpGroupWaitEvents:                         "OpGroupWaitEvents",
	OpGroupAll:                                "OpGroupAll",
	OpGroupAny:                                "OpGroupAny",
	OpGroupBroadcast:                          "OpGroupBroadcast",
	OpGroupIAdd:                               "OpGroupIAdd",
	OpGroupFAdd:                               "OpGroupFAdd",
	OpGroupFMin:                               "OpGroupFMin",
	OpGroupUMin:                               "OpGroupUMin",
	OpGroupSMin:                               "OpGroupSMin",
	OpGroupFMax:                               "OpGroupFMax",
	OpGroupUMax:                               "OpGroupUMax",
	OpGroupSMax:                               "OpGroupSMax",
	OpReadPipe:                                "OpReadPipe",
	OpWritePipe:                               "OpWritePipe",
	OpReservedReadPipe:                        "OpReservedReadPipe",
	OpReservedWritePipe:                       "OpReservedWritePipe",
	OpReserveReadPipePackets:                  "OpReserveReadPipePackets",
	OpReserveWritePipePackets:                 "OpReserveWritePipePackets",
	OpCommitReadPipe:                          "OpCommitReadPipe",
	OpCommitWritePipe:                         "OpCommitWritePipe",
	OpIsValidReserveId:                        "OpIsValidReserveId",
	OpGetNumPipePackets:                       "OpGetNumPipePackets",
	OpGetMaxPipePackets:                       "OpGetMaxPipePackets",
	OpGroupReserveReadPipePackets:             "OpGroupReserveReadPipePackets",
	OpGroupReserveWritePipePackets:            "OpGroupReserveWritePipePackets",
	OpGroupCommitReadPipe:                     "OpGroupCommitReadPipe",
	OpGroupCommitWritePipe:                    "OpGroupCommitWritePipe",
	OpEnqueueMarker:                           "OpEnqueueMarker",
	OpEnqueueKernel:                           "OpEnqueueKernel",
	OpGetKernelNDrangeSubGroupCount:           "OpGetKernelNDrangeSubGroupCount",
	OpGetKernelNDrangeMaxSubGroupSize:         "OpGetKernelNDrangeMaxSubGroupSize",
	OpGetKernelWorkGroupSize:                  "OpGetKernelWorkGroupSize",
	OpGetKernelPreferredWorkGroupSizeMultiple: "OpGetKernelPreferredWorkGroupSizeMultiple",
	OpRetainEvent:                             "OpRetainEvent",
	OpReleaseEvent:                            "OpReleaseEvent",
	OpCreateUserEvent:                         "OpCreateUserEvent",
	OpIsValidEvent:                            "OpIsValidEvent",
	OpSetUserEventStatus:                      "OpSetUserEventStatus",
	OpCaptureEventProfilingInfo:               "OpCaptureEventProfilingInfo",
	OpGetDefaultQueue:                         "OpGetDefaultQueue",
	OpBuildNDRange:                            "OpBuildNDRange",
	OpImageSparseSampleImplicitLod:            "OpImageSparseSampleImplicitLod",
	OpImageSparseSampleExplicitLod:            "OpImageSparseSampleExplicitLod",
	OpImageSparseSampleDrefImplicitLod:        "OpImageSparseSampleDrefImplicitLod",
	OpImageSparseSampleDrefExplicitLod:        "OpImageSparseSampleDrefExplicitLod",
	OpImageSparseSampleProjImplicitLod:        "OpImageSparseSampleProjImplicitLod",
	OpImageSparseSampleProjExplicitLod:        "OpImageSparseSampleProjExplicitLod",
	OpImageSparseSampleProjDrefImplicitLod:    "OpImageSparseSampleProjDrefImplicitLod",
	OpImageSparseSampleProjDrefExplicitLod:    "OpImageSparseSampleProjDrefExplicitLod",
	OpImageSparseFetch:                        "OpImageSparseFetch",
	OpImageSparseGather:                       "OpImageSparseGather",
	OpImageSparseDrefGather:                   "OpImageSparseDrefGather",
	OpImageSparseTexelsResident:               "OpImageSparseTexelsResident",
	OpNoLine:                                  "OpNoLine",
	OpAtomicFlagTestAndSet:                    "OpAtomicFlagTestAndSet",
	OpAtomicFlagClear:                         "OpAtomicFlagClear",
	OpImageSparseRead:                         "OpImageSparseRead",
	OpSizeOf:                                  "OpSizeOf",
	OpTypePipeStorage:                         "OpTypePipeStorage",
	OpConstantPipeStorage:                     "OpConstantPipeStorage",
	OpCreatePipeFromPipeStorage:               "OpCreatePipeFromPipeStorage",
	OpGetKernelLocalSizeForSubgroupCount:      "OpGetKernelLocalSizeForSubgroupCount",
	OpGetKernelMaxNumSubgroups:                "OpGetKernelMaxNumSubgroups",
	OpTypeNamedBarrier:                        "OpTypeNamedBarrier",
	OpNamedBarrierInitialize:                  "OpNamedBarrierInitialize",
	OpMemoryNamedBarrier:                      "OpMemoryNamedBarrier",
	OpModuleProcessed:                         "OpModuleProcessed",
	OpExecutionModeId:                         "OpExecutionModeId",
	OpDecorateId:                              "OpDecorateId",
	OpGroupNonUniformElect:                    "OpGroupNonUniformElect",
	OpGroupNonUniformAll:                      "OpGroupNonUniformAll",
	OpGroupNonUniformAny:                      "OpGroupNonUniformAny",
	OpGroupNonUniformAllEqual:                 "OpGroupNonUniformAllEqual",
	OpGroupNonUniformBroadcast:                "OpGroupNonUniformBroadcast",
	OpGroupNonUniformBroadcastFirst:           "OpGroupNonUniformBroadcastFirst",
	OpGroupNonUniformBallot:                   "OpGroupNonUniformBallot",
	OpGroupNonUniformInverseBallot:            "OpGroupNonUniformInverseBallot",
	OpGroupNonUniformBallotBitExtract:         "OpGroupNonUniformBallotBitExtract",
	OpGroupNonUniformBallotBitCount:           "OpGroupNonUniformBallotBitCount",
	OpGroupNonUniformBallotFindLSB:            "OpGroupNonUniformBallotFindLSB",
	OpGroupNonUniformBallotFindMSB:            "OpGroupNonUniformBallotFindMSB",
	OpGroupNonUniformShuffle:                  "OpGroupNonUniformShuffle",
	OpGroupNonUniformShuffleXor:               "OpGroupNonUniformShuffleXor",
	OpGroupNonUniformShuffleUp:                "OpGroupNonUniformShuffleUp",
	OpGroupNonUniformShuffleDown:              "OpGroupNonUniformShuffleDown",
	OpGroupNonUniformIAdd:                     "OpGroupNonUniformIAdd",
	OpGroupNonUniformFAdd:                     "OpGroupNonUniformFAdd",
	OpGroupNonUniformIMul:                     "OpGroupNonUniformIMul",
	OpGroupNonUniformFMul:                     "OpGroupNonUniformFMul",
	OpGroupNonUniformSMin:                     "OpGroupNonUniformSMin",
	OpGroupNonUniformUMin:                     "OpGroupNonUniformUMin",
	OpGroupNonUniformFMin:                     "OpGroupNonUniformFMin",
	OpGroupNonUniformSMax:                     "OpGroupNonUniformSMax",
	OpGroupNonUniformUMax:                     "OpGroupNonUniformUMax",
	OpGroupNonUniformFMax:                     "OpGroupNonUniformFMax",
	OpGroupNonUniformBitwiseAnd:               "OpGroupNonUniformBitwiseAnd",
	OpGroupNonUniformBitwiseOr:                "OpGroupNonUniformBitwiseOr",
	OpGroupNonUniformBitwiseXor:               "OpGroupNonUniformBitwiseXor",
	OpGroupNonUniformLogicalAnd:               "OpGroupNonUniformLogicalAnd",
	OpGroupNonUniformLogicalOr:                "OpGroupNonUniformLogicalOr",
	OpGroupNonUniformLogicalXor:               "OpGroupNonUniformLogicalXor",
	OpGroupNonUniformQuadBroadcast:            "OpGroupNonUniformQuadBroadcast",
	OpGroupNonUniformQuadSwap:                 "OpGroupNonUniformQuadSwap",
	OpCopyLogical:                             "OpCopyLogical",
	OpPtrEqual:                                "OpPtrEqual",
	OpPtrNotEqual:                             "OpPtrNotEqual",
	OpPtrDiff:                                 "OpPtrDiff",
	OpTerminateInvocation:                     "OpTerminateInvocation",
}

var opsByName map[string]Op

func init() {
	opsByName = make(map[string]Op, len(opNames))
	for op, name := range opNames {
		opsByName[name] = op
	}
}

// String returns the canonical opcode name, e.g. "OpIAdd".
// Opcodes without a name are rendered as "Op(<n>)".
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint16(op))
}

// Known reports whether op is a named core opcode.
func (op Op) Known() bool {
	_, ok := opNames[op]
	return ok
}

// LookupOp resolves an opcode by its canonical name.
func LookupOp(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// IsType reports whether op declares a type.
func (op Op) IsType() bool {
	switch {
	case op >= OpTypeVoid && op <= OpTypePipe:
		return true
	case op == OpTypePipeStorage, op == OpTypeNamedBarrier:
		return true
	}
	return false
}
